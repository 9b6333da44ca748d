package repositories

var (
	ErrOrderNotFound      = &RepositoryError{"order not found"}
	ErrOrderAlreadyExists = &RepositoryError{"order already exists"}
	ErrBookNotFound       = &RepositoryError{"book not found"}
	ErrUserNotFound       = &RepositoryError{"user not found"}
	ErrDuplicateKey       = &RepositoryError{"duplicate key"}
	ErrInsufficientStock  = &RepositoryError{"insufficient stock"}
	ErrStatusConflict     = &RepositoryError{"order status changed concurrently"}
)

type RepositoryError struct {
	message string
}

func (e *RepositoryError) Error() string {
	return e.message
}
