package cutstream

// A Colorizer decorates diagnostic messages with ANSI escape codes.  A nil
// *Colorizer prints them undecorated.
type Colorizer struct {
	PrefixColorCode []byte
	ResetCode       []byte
}

// PrintDiagnostic prints one line made of the prefix (coloured) and the
// error message.
func (c *Colorizer) PrintDiagnostic(p Printer, prefix string, err error) {
	if c != nil {
		p.PrintBytes(c.PrefixColorCode)
	}
	p.PrintString(prefix)
	if c != nil {
		p.PrintBytes(c.ResetCode)
	}
	p.PrintString(err.Error())
	p.EndLine("\n")
}
