package config

// EmbeddingDim returns the width of a frequency positional encoding of
// dIn coordinates with the given number of frequency bands. The encoding
// concatenates the raw input with sin and cos at each band; zero bands
// means the raw input passes through unencoded.
func EmbeddingDim(dIn, multires int) int {
	if multires <= 0 {
		return dIn
	}
	return dIn * (1 + 2*multires)
}

// EncodedInputDim returns the width of the encoded positional input fed to
// the background NeRF network.
func (p NerfParams) EncodedInputDim() int {
	return EmbeddingDim(p.DIn, p.Multires)
}

// EncodedViewDim returns the width of the encoded view-direction input, or
// zero when view directions are unused.
func (p NerfParams) EncodedViewDim() int {
	if !p.UseViewdirs {
		return 0
	}
	return EmbeddingDim(p.DInView, p.MultiresView)
}

// EncodedInputDim returns the width of the encoded point input fed to the
// SDF network.
func (p SDFNetworkParams) EncodedInputDim() int {
	return EmbeddingDim(p.DIn, p.Multires)
}

// EncodedInputDim returns the width of the color network input once view
// directions are encoded. The raw input concatenates point, view direction
// and normal (3 components each in idr mode) with the feature vector; only
// the view-direction slice is frequency-encoded.
func (p RenderingNetworkParams) EncodedInputDim() int {
	if p.MultiresView <= 0 {
		return p.DIn + p.DFeature
	}
	return p.DIn - 3 + EmbeddingDim(3, p.MultiresView) + p.DFeature
}

// TotalSamples returns the number of samples placed on a ray after
// importance sampling, including background samples.
func (p NeusRendererParams) TotalSamples() int {
	return p.NSamples + p.NImportance + p.NOutside
}
