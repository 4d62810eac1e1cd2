package tiff

// A tiff image file contains one or more images. The metadata
// of each image is contained in an Image File Directory (IFD),
// which contains entries of 12 bytes each (20 bytes for BigTIFF) and is
// described on page 14-16 of TIFF 6.0. An IFD entry consists of
//
//  - a tag, which describes the signification of the entry,
//  - the data type and length of the entry,
//  - the data itself or a pointer to it if it is more than 4 bytes.
//
// The presence of a length means that each IFD is effectively an array.

const (
	leHeader = "II\x2A\x00" // Header for little-endian files.
	beHeader = "MM\x00\x2A" // Header for big-endian files.

	// LittleEndianMarker and BigEndianMarker are the two first bytes of a file.
	LittleEndianMarker = 0x49 // 'I'
	BigEndianMarker    = 0x4D // 'M'

	ClassicMagic = 42
	BigMagic     = 43 // BigTIFF

	ClassicEntryLen = 12 // Length of an IFD entry in bytes.
	BigEntryLen     = 20 // Length of a BigTIFF IFD entry in bytes.
)

// Data types (TIFF 6.0, p. 14-16, BigTIFF adds 16-18).
const (
	dtByte      = 1
	dtASCII     = 2
	dtShort     = 3
	dtLong      = 4
	dtRational  = 5
	dtSByte     = 6
	dtUndefined = 7
	dtSShort    = 8
	dtSLong     = 9
	dtSRational = 10
	dtFloat     = 11
	dtDouble    = 12
	dtIFD       = 13
	dtLong8     = 16
	dtSLong8    = 17
	dtIFD8      = 18
)

// Tags (see TIFF 6.0, p. 28-41).
const (
	tNewSubFileType            = 254
	tImageWidth                = 256
	tImageLength               = 257
	tBitsPerSample             = 258
	tCompression               = 259
	tPhotometricInterpretation = 262

	tStripOffsets    = 273
	tSamplesPerPixel = 277
	tRowsPerStrip    = 278
	tStripByteCounts = 279

	tTileWidth      = 322
	tTileLength     = 323
	tTileOffsets    = 324
	tTileByteCounts = 325

	tXResolution         = 282
	tYResolution         = 283
	tPlanarConfiguration = 284
	tResolutionUnit      = 296
	tSoftware            = 305

	tPredictor    = 317
	tColorMap     = 320
	tExtraSamples = 338
	tSampleFormat = 339

	tCZLSMInfo = 34412 // Zeiss LSM private tag.
)

// Exported tag ids used by callers building a Directory by hand.
const (
	TagImageWidth                = tImageWidth
	TagImageLength               = tImageLength
	TagBitsPerSample             = tBitsPerSample
	TagCompression               = tCompression
	TagPhotometricInterpretation = tPhotometricInterpretation
	TagStripOffsets              = tStripOffsets
	TagSamplesPerPixel           = tSamplesPerPixel
	TagRowsPerStrip              = tRowsPerStrip
	TagStripByteCounts           = tStripByteCounts
	TagPlanarConfiguration       = tPlanarConfiguration
	TagTileWidth                 = tTileWidth
	TagTileLength                = tTileLength
	TagTileOffsets               = tTileOffsets
	TagTileByteCounts            = tTileByteCounts
	TagPredictor                 = tPredictor
	TagExtraSamples              = tExtraSamples
	TagSampleFormat              = tSampleFormat
)

// Compression types (defined in TIFF 6.0 and its supplements).
const (
	cNone       = 1
	cCCITT      = 2
	cG3         = 3 // Group 3 Fax.
	cG4         = 4 // Group 4 Fax.
	cLZW        = 5
	cJPEGOld    = 6 // Superseded by cJPEG.
	cJPEG       = 7
	cDeflate    = 8 // zlib compression.
	cPackBits   = 32773
	cDeflateOld = 32946 // Superseded by cDeflate.

	cSGILogRLE      = 34676 // Logluv
	cSGILog24Packed = 34677 // Logluv
	cLossyJPEG      = 34892
)

// Photometric interpretation values (see TIFF 6.0, p. 37).
const (
	pWhiteIsZero      = 0
	pBlackIsZero      = 1
	pRGB              = 2
	pPaletted         = 3
	pTransMask        = 4 // transparency mask
	pCMYK             = 5
	pYCbCr            = 6
	pCIELab           = 8
	pColorFilterArray = 32803
)

// Values for the tPredictor tag (TIFF 6.0, page 64-65).
const (
	PredictorNone       = 1
	PredictorHorizontal = 2
)

// Values for the tPlanarConfiguration tag (page 38).
const (
	PlanarContig   = 1 // RGBRGBRGB
	PlanarSeparate = 2 // RRRGGGBBB
)

// Values for the tSampleFormat tag (page 80).
const (
	sfUint  = 1
	sfInt   = 2
	sfFloat = 3
)

// Values for the tExtraSamples tag (page 31).
const (
	esUnspecified  = 0
	esAssociated   = 1
	esUnassociated = 2
)
