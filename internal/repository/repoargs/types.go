package repoargs

type RepositoryName string

const (
	UserRepoName             RepositoryName = "user"
	ItemRepoName             RepositoryName = "item"
	OrderRepoName            RepositoryName = "order"
	PointTransactionRepoName RepositoryName = "point_transaction"
	SettingsRepoName         RepositoryName = "settings"
)
