package symtypes

// IsExportName reports whether a type-table name denotes an export (as
// opposed to an internal type of the form "x#name", x in {t,e,s,u}).
func IsExportName(name string) bool {
	return !(len(name) > 1 && name[1] == '#')
}

// ShortType returns the single-letter internal-type discriminator ('t', 'e',
// 's', or 'u') and the base name for a name of the form "x#base". ok is false
// for export names or malformed internal names.
func ShortType(name string) (shortType byte, base string, ok bool) {
	if IsExportName(name) || len(name) < 3 {
		return 0, "", false
	}
	return name[0], name[2:], true
}

// expandShortType maps the single-letter discriminator to its C keyword, per
// spec.md §4.E's "x→typedef/enum/struct/union" shorthand expansion.
func expandShortType(x byte) (word string, ok bool) {
	switch x {
	case 't':
		return "typedef", true
	case 'e':
		return "enum", true
	case 's':
		return "struct", true
	case 'u':
		return "union", true
	default:
		return "", false
	}
}
