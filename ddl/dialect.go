package ddl

import (
	"fmt"
	"regexp"
	"strings"
)

// Dialect selects the SQL flavour tables are rendered in.
type Dialect int

const (
	MySQL Dialect = iota
	SQLite
)

func (d Dialect) String() string {
	switch d {
	case MySQL:
		return "mysql"
	case SQLite:
		return "sqlite"
	default:
		return fmt.Sprintf("<err: %d is not a dialect>", int(d))
	}
}

func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(s) {
	case "mysql", "":
		return MySQL, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	}
	return MySQL, fmt.Errorf("unknown dialect %q", s)
}

func (d *Dialect) UnmarshalText(text []byte) error {
	v, err := ParseDialect(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (d Dialect) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// primaryKey renders the type of an auto increment primary key column.
func (d Dialect) primaryKey(typ string) string {
	if d == SQLite {
		return "INTEGER PRIMARY KEY AUTOINCREMENT"
	}
	return typ + " AUTO_INCREMENT PRIMARY KEY"
}

var plainIdent = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Quote quotes ident if it is a reserved word or not a plain identifier.
func (d Dialect) Quote(ident string) string {
	if plainIdent.MatchString(ident) && !reserved[ident] {
		return ident
	}
	if d == SQLite {
		return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
	}
	return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
}

var reserved = map[string]bool{}

func init() {
	for _, w := range strings.Fields(`
		add all alter and as asc between by case check column constraint
		create cross default delete desc distinct drop else end exists
		foreign from full group having in index inner insert interval into
		is join key left like limit match natural not null on or order
		outer primary references right select set table then to union
		unique update user using values when where with`) {
		reserved[w] = true
	}
}
