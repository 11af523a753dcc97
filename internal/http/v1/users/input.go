package users

// ProfileDraft is the profile part of a login request.
type ProfileDraft struct {
	ID    string `json:"id,omitempty"  maxLength:"128"                 doc:"Identifier of the profile to update"          example:"0b6f3c1e-8d7a-4a8e-9d3b-2f1e5c7a9b10"`
	Name  string `json:"name"          maxLength:"100"                doc:"Display name"                                 example:"Ann Lee"`
	Email string `json:"email"         maxLength:"254"                doc:"Email address"                                example:"ann@example.com"`
	Age   *int   `json:"age,omitempty" minimum:"0"     maximum:"150"  doc:"Age in years"                                 example:"30"`
}

// LoginInput for POST /users/login
type LoginInput struct {
	Body struct {
		Name    string       `json:"name"    minLength:"1" maxLength:"100" doc:"Login name" example:"Ann Lee"`
		Profile ProfileDraft `json:"profile"                               doc:"Profile attributes to store"`
	}
}

// ProfileGetInput for GET /profile (no body needed)
type ProfileGetInput struct{}

// UserDeleteInput for DELETE /users/{id}
type UserDeleteInput struct {
	ID string `path:"id" maxLength:"128" doc:"Profile identifier" example:"0b6f3c1e-8d7a-4a8e-9d3b-2f1e5c7a9b10"`
}
