package dispatchers

type RootSpec struct {
	Name    string
	Summary string
	Usage   string
	Version string
	Flags   []FlagDescriptor
}

// GroupSpec describes a branch. Path excludes the program name.
type GroupSpec struct {
	Path    []string
	Summary string
	Usage   string
}

// CommandSpec describes a leaf. Path excludes the program name.
type CommandSpec struct {
	Path     []string
	Summary  string
	Usage    string
	Flags    []FlagDescriptor
	Args     []ArgSpec
	Action   CommandFunc
	Category CommandCategory
}
