package highlight

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrDialectInvalid indicates a dialect definition that cannot be used.
var ErrDialectInvalid = errors.New("invalid dialect")

// Dialect is an externally supplied SQL vocabulary plus scanning rules.
type Dialect struct {
	Name  string `yaml:"name"`
	Rules Rules  `yaml:"rules"`

	Keywords  []string `yaml:"keywords"`
	Commands  []string `yaml:"commands"`
	Datatypes []string `yaml:"datatypes"`
	Functions []string `yaml:"functions"`
	Operators []string `yaml:"operators"`
}

// Table builds the keyword table. Lists are registered in a fixed order
// (keywords, commands, datatypes, functions, operators) so that a word
// present in several lists keeps the category of the earliest one.
func (d *Dialect) Table() *KeywordTable {
	return NewTableBuilder().
		Add(CategoryKeywordStandard, d.Keywords...).
		Add(CategoryKeywordCommand, d.Commands...).
		Add(CategoryDatatype, d.Datatypes...).
		Add(CategoryKeywordFunction, d.Functions...).
		Add(CategoryOperator, d.Operators...).
		Build()
}

// Scanner builds a scanner for the dialect.
func (d *Dialect) Scanner() *Scanner {
	return NewScanner(d.Table(), d.Rules)
}

// Validate checks that the dialect has a name and at least one word.
func (d *Dialect) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: missing name", ErrDialectInvalid)
	}
	if len(d.Keywords)+len(d.Commands)+len(d.Datatypes)+len(d.Functions)+len(d.Operators) == 0 {
		return fmt.Errorf("%w: %s has no words", ErrDialectInvalid, d.Name)
	}
	return nil
}

// ParseDialect decodes a YAML dialect definition.
func ParseDialect(data []byte) (*Dialect, error) {
	var d Dialect
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDialectInvalid, err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// LoadDialect reads a YAML dialect definition from path.
func LoadDialect(path string) (*Dialect, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dialect %s: %w", path, err)
	}
	d, err := ParseDialect(data)
	if err != nil {
		return nil, fmt.Errorf("dialect %s: %w", path, err)
	}
	return d, nil
}

// BuiltinDialect returns a built-in dialect by name.
func BuiltinDialect(name string) (*Dialect, bool) {
	switch name {
	case "", "ansi":
		return ANSIDialect(), true
	case "mysql":
		return MySQLDialect(), true
	case "oracle":
		return OracleDialect(), true
	}
	return nil, false
}

// ANSIDialect returns a general SQL vocabulary.
func ANSIDialect() *Dialect {
	return &Dialect{
		Name: "ansi",
		Keywords: []string{
			"ADD", "ALL", "ALTER", "ANY", "AS", "ASC", "BEGIN", "BY", "CASCADE",
			"CASE", "CHECK", "COLUMN", "COMMIT", "CONSTRAINT", "CREATE", "CROSS",
			"CURRENT", "DEFAULT", "DELETE", "DESC", "DISTINCT", "DROP", "ELSE",
			"END", "ESCAPE", "EXCEPT", "EXISTS", "FETCH", "FOR", "FOREIGN", "FROM",
			"FULL", "GRANT", "GROUP", "HAVING", "INDEX", "INNER", "INSERT",
			"INTERSECT", "INTO", "JOIN", "KEY", "LEFT", "LIMIT", "MERGE", "NATURAL",
			"NULL", "OFFSET", "ON", "ORDER", "OUTER", "OVER", "PARTITION",
			"PRIMARY", "REFERENCES", "REVOKE", "RIGHT", "ROLLBACK", "ROWS",
			"SAVEPOINT", "SELECT", "SET", "TABLE", "THEN", "TO", "TRANSACTION",
			"TRUNCATE", "UNION", "UNIQUE", "UPDATE", "USING", "VALUES", "VIEW",
			"WHEN", "WHERE", "WITH",
		},
		Datatypes: []string{
			"BIGINT", "BINARY", "BLOB", "BOOLEAN", "CHAR", "CHARACTER", "CLOB",
			"DATE", "DECIMAL", "DOUBLE", "FLOAT", "INT", "INTEGER", "INTERVAL",
			"NUMERIC", "REAL", "SMALLINT", "TIME", "TIMESTAMP", "VARBINARY",
			"VARCHAR",
		},
		Functions: []string{
			"ABS", "AVG", "CAST", "CEIL", "COALESCE", "COUNT", "CURRENT_DATE",
			"CURRENT_TIMESTAMP", "EXTRACT", "FLOOR", "LOWER", "LTRIM", "MAX",
			"MIN", "MOD", "NULLIF", "POSITION", "ROUND", "ROW_NUMBER", "RTRIM",
			"SUBSTRING", "SUM", "TRIM", "UPPER",
		},
		Operators: []string{
			"AND", "BETWEEN", "IN", "IS", "LIKE", "NOT", "OR",
		},
	}
}

// MySQLDialect extends the ANSI vocabulary with MySQL rules.
func MySQLDialect() *Dialect {
	d := ANSIDialect()
	d.Name = "mysql"
	d.Rules = Rules{BackslashEscapes: true, HashComments: true, BacktickIdentifiers: true}
	d.Keywords = append(d.Keywords, "AUTO_INCREMENT", "ENGINE", "IGNORE", "REPLACE", "SHOW")
	d.Commands = []string{"DELIMITER", "SOURCE", "USE"}
	d.Datatypes = append(d.Datatypes, "TINYINT", "MEDIUMINT", "LONGTEXT", "TEXT", "DATETIME", "ENUM")
	d.Functions = append(d.Functions, "CONCAT", "IFNULL", "NOW", "GROUP_CONCAT")
	d.Operators = append(d.Operators, "DIV", "REGEXP", "XOR")
	return d
}

// OracleDialect extends the ANSI vocabulary with Oracle and SQL*Plus words.
func OracleDialect() *Dialect {
	d := ANSIDialect()
	d.Name = "oracle"
	d.Keywords = append(d.Keywords, "CONNECT", "DUAL", "MINUS", "PRIOR", "ROWNUM", "START", "SYNONYM", "SEQUENCE")
	d.Commands = []string{"DESCRIBE", "DESC", "EXEC", "PROMPT", "SPOOL", "WHENEVER"}
	d.Datatypes = append(d.Datatypes, "NUMBER", "VARCHAR2", "NVARCHAR2", "RAW", "ROWID")
	d.Functions = append(d.Functions, "DECODE", "NVL", "NVL2", "SUBSTR", "SYSDATE", "TO_CHAR", "TO_DATE")
	return d
}
