package transport

type CredentialsRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type SearchRequest struct {
	Query string `query:"q"`
	Page  int    `query:"page"`
	Size  int    `query:"size"`
}
