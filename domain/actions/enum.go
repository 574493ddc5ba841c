package actions

type IEnumAction interface {
	ActionName() string
	ActionOrdinal() int
	Values() []string
}

type IAction interface {
	ActionType() ActionType
	ActionEnum() IEnumAction
}
