package requestresponse

import "lookescolar-server/internal/model"

// UploadPhotosResponse : итог пакетной загрузки фотографий события
type UploadPhotosResponse struct {
	Data model.UploadResult `json:"data"`
}

type PreviewURLResponse struct {
	Data struct {
		URL       string `json:"url"`
		ExpiresIn string `json:"expires_in"`
	} `json:"data"`
}

type WatermarkSettingsResponse struct {
	Data model.WatermarkSettings `json:"data"`
}

type TenantFeaturesRequest struct {
	Flags map[string]bool `json:"flags"`
}

type TenantFeaturesResponse struct {
	Data model.TenantFeatures `json:"data"`
}
