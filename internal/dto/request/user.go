package request

type BindLineRequest struct {
	LineUserID string `json:"line_user_id" validate:"required"`
}

type GrantRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=ADMIN MEMBER"`
}
