package response_models

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	Role        string `json:"role"`
}
