package core

type Reporter interface {
	Report(summary *Summary, repository FunctionRepository) error
}
