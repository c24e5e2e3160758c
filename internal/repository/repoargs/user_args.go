package repoargs

import "github.com/fsdevblog/dzstore/internal/domain"

type CreateUser struct {
	Username string
	Password string
	SteamID  string
	Role     domain.UserRole
}
