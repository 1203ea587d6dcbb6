package anonymize

// blank clears the column.
type blank struct{}

func (blank) Name() string {
	return FuncClearContent
}

func (blank) Apply(string, string) string {
	return ""
}
