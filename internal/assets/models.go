package assets

import _ "embed"

// ImageModelsData holds the raw JSON catalog of image providers and models.
//
//go:embed image_models.json
var ImageModelsData []byte
