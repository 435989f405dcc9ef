package request_models

type NewsletterSubscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
}
