// Package config provides configuration handling for mvvmgen.
package config

// Platform selects the XAML toolkit whose runtime primitives generated code calls into.
type Platform string

const (
	PlatformWPF      Platform = "wpf"
	PlatformWinUI    Platform = "winui"
	PlatformAvalonia Platform = "avalonia"
)

// Valid reports whether p is a supported platform.
func (p Platform) Valid() bool {
	switch p {
	case PlatformWPF, PlatformWinUI, PlatformAvalonia:
		return true
	}
	return false
}

// DefaultValues returns default-value expressions by C# type, used when a
// dependency-style property declares no default of its own.
func DefaultValues() map[string]string {
	return map[string]string{
		// Numeric types
		"byte":    "(byte)0",
		"sbyte":   "(sbyte)0",
		"short":   "(short)0",
		"ushort":  "(ushort)0",
		"int":     "0",
		"uint":    "0U",
		"long":    "0L",
		"ulong":   "0UL",
		"float":   "0F",
		"double":  "0D",
		"decimal": "0M",

		// Other primitives
		"bool":   "false",
		"char":   "'\\0'",
		"string": "null",
		"object": "null",

		// Framework structs
		"System.DateTime": "default(System.DateTime)",
		"DateTime":        "default(DateTime)",
		"TimeSpan":        "TimeSpan.Zero",
		"Guid":            "Guid.Empty",
	}
}

// BooleanBoxes maps boolean literals to the cached boxes WPF code uses so
// registration metadata does not box a new value per property.
func BooleanBoxes() map[string]string {
	return map[string]string{
		"true":  "BooleanBoxes.TrueBox",
		"false": "BooleanBoxes.FalseBox",
	}
}

// DefaultOptions returns default generation options.
func DefaultOptions() Options {
	return Options{
		Platform:            PlatformWPF,
		FieldPrefixes:       []string{"_", "m_", "s_"},
		NotifyMethod:        "RaisePropertyChanged",
		CommandNotifyMethod: "RaiseCanExecuteChanged",
		BusyPropertyName:    "IsBusy",
		ValidateMethod:      "ValidateProperty",
		PublicOnly:          false,
		Parallelism:         4,
		IndentSize:          4,
	}
}
