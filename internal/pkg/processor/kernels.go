package processor

// Fixed kernels, already divided by their scale factor.
var (
	blurKernel = [25]float64{
		1.0 / 16, 1.0 / 16, 1.0 / 16, 1.0 / 16, 1.0 / 16,
		1.0 / 16, 0, 0, 0, 1.0 / 16,
		1.0 / 16, 0, 0, 0, 1.0 / 16,
		1.0 / 16, 0, 0, 0, 1.0 / 16,
		1.0 / 16, 1.0 / 16, 1.0 / 16, 1.0 / 16, 1.0 / 16,
	}

	sharpenKernel = [9]float64{
		-2.0 / 16, -2.0 / 16, -2.0 / 16,
		-2.0 / 16, 32.0 / 16, -2.0 / 16,
		-2.0 / 16, -2.0 / 16, -2.0 / 16,
	}

	edgeEnhanceKernel = [9]float64{
		-1.0 / 2, -1.0 / 2, -1.0 / 2,
		-1.0 / 2, 10.0 / 2, -1.0 / 2,
		-1.0 / 2, -1.0 / 2, -1.0 / 2,
	}

	// contour and emboss sum to zero and rely on a bias
	contourKernel = [9]float64{
		-1, -1, -1,
		-1, 8, -1,
		-1, -1, -1,
	}

	embossKernel = [9]float64{
		-1, 0, 0,
		0, 1, 0,
		0, 0, 0,
	}
)
