// Package template parses SQL template files into method descriptors
// ready for code generation.
//
// A template file pairs a class-name header with named SQL blocks:
//
//	# UserRepository
//	#get_user_by_id
//	SELECT * FROM users WHERE id = :user_id;
//	#create_user
//	INSERT INTO users (username, email) VALUES (:username, :email);
//
// The first non-blank line names the generated type. Each #method
// line (no space after the #) introduces the SQL belonging to that
// method, up to the next header or end of file. Named parameters use
// :identifier syntax.
package template

import (
	"github.com/leapstack-labs/sqlgen/pkg/sqltext"
)

// File is a fully parsed template file. It is constructed once per
// parse and never mutated afterwards.
type File struct {
	// Path is the source file path, empty when parsed from memory.
	Path string
	// ClassName is the identifier from the first-line header.
	ClassName string
	// Methods preserves declaration order from the file.
	Methods []Method
}

// Method pairs a callable name with its SQL text and the analysis the
// code generator relies on. The generator must not re-derive Type or
// Params; it trusts this descriptor fully.
type Method struct {
	// Name is the method identifier from the #name header.
	Name string
	// SQL is the method's statement text, comments intact, trailing
	// terminator removed.
	SQL string
	// Type is the classification of the method's primary statement.
	Type sqltext.StatementType
	// Params lists distinct :name parameters in first-occurrence order.
	Params []string
	// HasReturning marks DML that carries a RETURNING clause. Such
	// statements still classify as execute; the flag tells the
	// generator rows will come back.
	HasReturning bool
}
