package users

// LoginOutput for POST /users/login
type LoginOutput struct {
	Body Profile
}

// ProfileGetOutput for GET /profile
type ProfileGetOutput struct {
	Body Profile
}
