package basic

// UserMeta is the actor descriptor extracted from the caller's token. The
// engine never authenticates; it only authorizes against this context.
type UserMeta struct {
	UserId   string `json:"userId" mapstructure:"userId"`
	Role     string `json:"role" mapstructure:"role"`
	SchoolId string `json:"schoolId" mapstructure:"schoolId"`
	DeviceId string `json:"deviceId" mapstructure:"deviceId"`
}

func (u *UserMeta) GetUserId() string {
	if u == nil {
		return ""
	}
	return u.UserId
}

func (u *UserMeta) GetRole() string {
	if u == nil {
		return ""
	}
	return u.Role
}

func (u *UserMeta) GetSchoolId() string {
	if u == nil {
		return ""
	}
	return u.SchoolId
}

type PaginationOptions struct {
	Page  *int64 `json:"page,omitempty" mapstructure:"page"`
	Limit *int64 `json:"limit,omitempty" mapstructure:"limit"`
}
