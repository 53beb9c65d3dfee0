package dto

// DigitalMaterialResponse is one row of the digital library listing
type DigitalMaterialResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Type        string  `json:"type" example:"digital"`
	Year        *int    `json:"year,omitempty"`
	ISBN        *string `json:"isbn,omitempty"`
	Description *string `json:"description,omitempty"`
	FileURL     *string `json:"fileUrl,omitempty"`
	Pages       *int    `json:"pages,omitempty"`
	SizeBytes   *int64  `json:"sizeBytes,omitempty"`
}

// DownloadResponse reports a recorded download and where to fetch the file
type DownloadResponse struct {
	DownloadID string `json:"downloadId"`
	FileURL    string `json:"fileUrl"`
}
