package affiliate_click

// ClickResponse id ссылки, который клиент передает при бронировании
type ClickResponse struct {
	AffiliateLinkID int64  `json:"affiliateLinkId"`
	CustomURL       string `json:"customUrl"`
}
