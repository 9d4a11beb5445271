package mirfile

// File is the on-disk shape of a MIR module in TOML or YAML. Types,
// statements and terminators are written in the syntax mir.DumpModule
// prints.
//
//	name = "demo"
//
//	[[body]]
//	name = "consume"
//	params = ["Point"]
//	return = "()"
//
//	[[body.local]]
//	type = "()"
//
//	[[body.local]]
//	name = "p"
//	type = "Point"
//
//	[[body.block]]
//	stmts = ["_0 = const ()", "drop(_1)"]
//	term = "return"
type File struct {
	Name   string     `toml:"name" yaml:"name"`
	Bodies []BodyFile `toml:"body" yaml:"bodies"`
}

type BodyFile struct {
	Name      string      `toml:"name" yaml:"name"`
	Params    []string    `toml:"params" yaml:"params"`
	Return    string      `toml:"return" yaml:"return"`
	Lifetimes []string    `toml:"lifetimes" yaml:"lifetimes"`
	Bounds    []string    `toml:"bounds" yaml:"bounds"`
	Locals    []LocalFile `toml:"local" yaml:"locals"`
	Blocks    []BlockFile `toml:"block" yaml:"blocks"`
}

type LocalFile struct {
	Name     string `toml:"name" yaml:"name"`
	Type     string `toml:"type" yaml:"type"`
	Mut      bool   `toml:"mut" yaml:"mut"`
	Lifetime string `toml:"lifetime" yaml:"lifetime"`
}

type BlockFile struct {
	Name  string   `toml:"name" yaml:"name"`
	Stmts []string `toml:"stmts" yaml:"stmts"`
	Term  string   `toml:"term" yaml:"term"`
}
