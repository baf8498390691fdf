package pgb

/*
Schema-qualified table used to build common statements. All methods return a
`Query` with ordinal parameters, suitable for `Conn.Run` or any `Querier`.
Where-clauses use named parameters, see `ProcessNamedParams`.
*/
type Table struct {
	Schema string `yaml:"schema"`
	Name   string `yaml:"name"`
}

// Schema-qualified quoted name, such as `"public"."users"`.
func (self Table) QualifiedName() string {
	return QualifiedName(self.Schema, self.Name)
}

/*
Builds a select query:

	SELECT <fields> FROM "schema"."name" [WHERE <where>] <trailing clauses>

The projection and trailing clauses come from `ProcessQueryFields` and
`ProcessQueryOptions`. An empty where-clause is omitted.
*/
func (self Table) Select(where string, params NamedParams, opt QueryOptions) (out Query, err error) {
	defer clearOnErr(&out, &err)
	defer rec(&err)
	try(opt.Validate())

	out.AppendRaw(`SELECT`)
	out.Text = appendQueryFields(out.Text, opt)
	out.AppendRaw(` FROM `)
	out.AppendRaw(self.QualifiedName())
	self.appendWhere(&out, where, params)
	out.Text = appendQueryOptions(out.Text, opt)
	return
}

/*
Builds an insert statement returning the inserted row. Columns are inserted in
sorted order. Each value is converted via `TransformParam` using its declared
field type, if any.

	INSERT INTO "schema"."name" ("a","b") VALUES ($1,$2) RETURNING *
*/
func (self Table) Insert(values NamedParams, types map[string]FieldType) (out Query, err error) {
	defer clearOnErr(&out, &err)
	defer rec(&err)
	if len(values) == 0 {
		panic(errInvalid(`building insert`, `no values to insert into %v`, self.QualifiedName()))
	}

	keys := sortedKeys(values)

	out.AppendRaw(`INSERT INTO `)
	out.AppendRaw(self.QualifiedName())
	out.AppendRaw(` (`)
	for ind, key := range keys {
		if ind > 0 {
			out.AppendRaw(`,`)
		}
		out.AppendRaw(QuoteIdent(key))
	}
	out.AppendRaw(`) VALUES (`)
	for ind, key := range keys {
		if ind > 0 {
			out.AppendRaw(`,`)
		}
		out.Args = append(out.Args, try1(TransformParam(values[key], types[key])))
		out.Text = appendOrdinal(out.Text, len(out.Args))
	}
	out.AppendRaw(`) RETURNING *`)
	return
}

/*
Builds an update statement returning the updated rows. Assigned columns are in
sorted order and converted like in `.Insert`. The where-clause uses named
parameters; its ordinal parameters are numbered after the assigned values.

	UPDATE "schema"."name" SET "a"=$1,"b"=$2 WHERE id = $3 RETURNING *
*/
func (self Table) Update(
	set NamedParams, types map[string]FieldType, where string, params NamedParams,
) (out Query, err error) {
	defer clearOnErr(&out, &err)
	defer rec(&err)
	if len(set) == 0 {
		panic(errInvalid(`building update`, `no values to update in %v`, self.QualifiedName()))
	}

	out.AppendRaw(`UPDATE `)
	out.AppendRaw(self.QualifiedName())
	out.AppendRaw(` SET `)
	for ind, key := range sortedKeys(set) {
		if ind > 0 {
			out.AppendRaw(`,`)
		}
		out.AppendRaw(QuoteIdent(key))
		out.AppendRaw(`=`)
		out.Args = append(out.Args, try1(TransformParam(set[key], types[key])))
		out.Text = appendOrdinal(out.Text, len(out.Args))
	}
	self.appendWhere(&out, where, params)
	out.AppendRaw(` RETURNING *`)
	return
}

/*
Builds a delete statement returning the deleted rows:

	DELETE FROM "schema"."name" WHERE <where> RETURNING *
*/
func (self Table) Delete(where string, params NamedParams) (out Query, err error) {
	defer clearOnErr(&out, &err)
	defer rec(&err)
	out.AppendRaw(`DELETE FROM `)
	out.AppendRaw(self.QualifiedName())
	self.appendWhere(&out, where, params)
	out.AppendRaw(` RETURNING *`)
	return
}

// Must be deferred before `rec`, which makes it run after `rec`.
func clearOnErr(out *Query, err *error) {
	if *err != nil {
		*out = Query{}
	}
}

func (self Table) appendWhere(out *Query, where string, params NamedParams) {
	if where == `` {
		return
	}
	out.AppendRaw(` WHERE `)
	out.AppendNamed(where, params)
}
