package utils

// Pagination binds the page/limit query parameters.
type Pagination struct {
	Page  int `json:"page" form:"page"`
	Limit int `json:"limit" form:"limit"`
}

// Normalize clamps the parameters and applies the caller's default page
// size (the feed uses 10, explore uses 12). Returns offset and limit.
func (p *Pagination) Normalize(defaultLimit int) (int, int) {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	return (p.Page - 1) * p.Limit, p.Limit
}
