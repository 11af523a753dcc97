package state

// StateGetInput for GET /state (no body needed)
type StateGetInput struct{}

// ProfileSaveInput for POST /profile
type ProfileSaveInput struct {
	Body struct {
		Name  string `json:"name"          doc:"Display name, 3-50 letters, spaces, hyphens or apostrophes" example:"Ann Lee"`
		Email string `json:"email"         doc:"Email address"                                              example:"ann@example.com"`
		Age   *int   `json:"age,omitempty" doc:"Optional age, 18-120"                                       example:"30"`
	}
}

// ProfileLoadInput for POST /profile/load (no body needed)
type ProfileLoadInput struct{}

// ProfileDeleteInput for DELETE /profile/{id}
type ProfileDeleteInput struct {
	ID string `path:"id" doc:"Identifier of the profile to delete" example:"u1"`
}
