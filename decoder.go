package tiff

// DecodeStrip decompresses one raw strip or tile with the scheme recorded in d
// and reverses its predictor. raw is left untouched.
func DecodeStrip(d Directory, raw []byte) ([]byte, error) {
	c, err := compressionOf(d)
	if err != nil {
		return nil, err
	}
	opts, err := stripCodecOptions(d)
	if err != nil {
		return nil, err
	}
	// Fail on a bad predictor before doing any work.
	if _, _, err = newPredictorLayout(d); err != nil {
		return nil, err
	}

	pix, err := c.Decompress(raw, opts)
	if err != nil {
		return nil, err
	}
	if err = Undifference(pix, d); err != nil {
		return nil, err
	}
	return pix, nil
}

// EncodeStrip applies the predictor recorded in d to a copy of pix and
// compresses it with the scheme recorded in d. pix is left untouched.
func EncodeStrip(d Directory, pix []byte) ([]byte, error) {
	c, err := compressionOf(d)
	if err != nil {
		return nil, err
	}
	opts, err := stripCodecOptions(d)
	if err != nil {
		return nil, err
	}

	buf := append([]byte{}, pix...)
	if err = Difference(buf, d); err != nil {
		return nil, err
	}
	return c.Compress(buf, opts)
}

// stripCodecOptions narrows the codec options of d to a single strip or tile.
// The last strip of an image may hold fewer rows than RowsPerStrip.
func stripCodecOptions(d Directory) (CodecOptions, error) {
	opts, err := BuildCodecOptions(d)
	if err != nil {
		return opts, err
	}

	if w := firstVal(d, tTileWidth, 0); w != 0 {
		opts.Width = int(w)
		opts.Height = int(firstVal(d, tTileLength, uint(opts.Height)))
		return opts, nil
	}
	if rows := int(firstVal(d, tRowsPerStrip, 0)); rows > 0 && rows < opts.Height {
		opts.Height = rows
	}
	return opts, nil
}
