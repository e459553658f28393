package dto

// UpdateUserRequest edición de un usuario desde el panel de administración.
// El email no se edita (como en el panel original: editable solo al crear).
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Role     *string `json:"role"`
	Status   *string `json:"status"`
}
