package model

// ProcessedImage : результат пайплайна, в БД не сохраняется
type ProcessedImage struct {
	Data     []byte `json:"-"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Size     int64  `json:"size"`
	Format   string `json:"format"`
	Filename string `json:"filename"`
}

// UploadFile : файл из multipart-запроса
type UploadFile struct {
	Filename string
	Data     []byte
}

// UploadedPreview : превью, загруженное в объектное хранилище, и рядом с ним
// производная с водяным знаком по настройкам обработки
type UploadedPreview struct {
	OriginalName string          `json:"original_name"`
	Filename     string          `json:"filename"`
	ObjectKey    string          `json:"object_key"`
	Width        int             `json:"width"`
	Height       int             `json:"height"`
	Size         int64           `json:"size"`
	Watermarked  UploadedVariant `json:"watermarked"`
}

type UploadedVariant struct {
	Filename  string `json:"filename"`
	ObjectKey string `json:"object_key"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Size      int64  `json:"size"`
}

type DuplicateUpload struct {
	Filename    string `json:"filename"`
	DuplicateOf string `json:"duplicate_of"`
	Hash        string `json:"hash"`
}

type UploadError struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// UploadResult : три списка, которые вызывающий сверяет с исходными файлами по имени
type UploadResult struct {
	Uploaded   []UploadedPreview `json:"uploaded"`
	Duplicates []DuplicateUpload `json:"duplicates"`
	Errors     []UploadError     `json:"errors"`
}
