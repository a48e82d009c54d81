package domain

type College struct {
	Code      string `json:"code" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Address   string `json:"address,omitempty"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	Principal string `json:"principal,omitempty"`
}

func (c College) Key() string {
	return c.Code
}
