package pgb

import (
	"strconv"
)

/*
Returns the projection part of a select query, starting with a space:

	QueryOptions{}                                       -> ` *`
	QueryOptions{Distinct: true}                         -> ` DISTINCT *`
	QueryOptions{Fields: FieldList{`one`, `count(*)`}}   -> ` "one", count(*)`
	QueryOptions{Fields: FieldsRaw(`max(one) as one`)}   -> ` max(one) as one`
*/
func ProcessQueryFields(opt QueryOptions) string {
	return string(appendQueryFields(nil, opt))
}

func appendQueryFields(buf []byte, opt QueryOptions) []byte {
	buf = append(buf, ' ')
	if opt.Distinct {
		buf = append(buf, `DISTINCT `...)
	}
	if opt.Fields == nil {
		return append(buf, '*')
	}
	return opt.Fields.appendFields(buf)
}

/*
Returns the trailing clauses of a select query, each starting with a space, in
the following order, skipping absent options:

	GROUP BY <fields>
	ORDER BY <orderings>
	LIMIT <n>
	OFFSET <n>
	FOR UPDATE

For example, `QueryOptions{OrderBy: OrderList{"+a", "-b", "c desc"}, Limit: 10,
Offset: 5}` produces:

	 ORDER BY "a" asc,"b" desc,"c" desc LIMIT 10 OFFSET 5
*/
func ProcessQueryOptions(opt QueryOptions) string {
	return string(appendQueryOptions(nil, opt))
}

func appendQueryOptions(buf []byte, opt QueryOptions) []byte {
	if opt.GroupBy != nil {
		buf = append(buf, ` GROUP BY `...)
		buf = opt.GroupBy.appendGroupBy(buf)
	}
	if opt.OrderBy != nil {
		buf = append(buf, ` ORDER BY `...)
		buf = opt.OrderBy.appendOrderBy(buf)
	}
	if opt.Limit != 0 {
		buf = append(buf, ` LIMIT `...)
		buf = strconv.AppendInt(buf, opt.Limit, 10)
	}
	if opt.Offset != 0 {
		buf = append(buf, ` OFFSET `...)
		buf = strconv.AppendInt(buf, opt.Offset, 10)
	}
	if opt.ForUpdate {
		buf = append(buf, ` FOR UPDATE`...)
	}
	return buf
}

func (self FieldsRaw) appendFields(buf []byte) []byte {
	return append(buf, self...)
}

func (self FieldList) appendFields(buf []byte) []byte {
	return appendQuotedFields(buf, self, `, `)
}

func (self GroupField) appendGroupBy(buf []byte) []byte {
	return append(buf, QuoteField(string(self))...)
}

func (self GroupFields) appendGroupBy(buf []byte) []byte {
	return appendQuotedFields(buf, self, `,`)
}

func (self OrderStr) appendOrderBy(buf []byte) []byte {
	return appendOrd(buf, string(self))
}

func (self OrderList) appendOrderBy(buf []byte) []byte {
	for ind, val := range self {
		if ind > 0 {
			buf = append(buf, ',')
		}
		buf = appendOrdItem(buf, val)
	}
	return buf
}

func (self OrderDict) appendOrderBy(buf []byte) []byte {
	for ind, val := range self {
		if ind > 0 {
			buf = append(buf, ',')
		}
		buf = appendOrdPair(buf, val.Field, val.Dir)
	}
	return buf
}

func (self OrderMap) appendOrderBy(buf []byte) []byte {
	for ind, key := range sortedKeys(self) {
		if ind > 0 {
			buf = append(buf, ',')
		}
		buf = appendOrdPair(buf, key, self[key])
	}
	return buf
}

func appendQuotedFields(buf []byte, vals []string, sep string) []byte {
	for ind, val := range vals {
		if ind > 0 {
			buf = append(buf, sep...)
		}
		buf = append(buf, QuoteField(val)...)
	}
	return buf
}

func appendOrdItem(buf []byte, src string) []byte {
	if len(src) > 0 {
		switch src[0] {
		case ordAscSigil:
			return appendOrdSigil(buf, src[1:], DirAsc)
		case ordDescSigil:
			return appendOrdSigil(buf, src[1:], DirDesc)
		}
	}
	return appendOrd(buf, src)
}

func appendOrdSigil(buf []byte, src string, dir Dir) []byte {
	ident, _, ok := parseOrd(src)
	if ok {
		src = ident
	}
	return appendOrdPair(buf, src, dir.String())
}

func appendOrd(buf []byte, src string) []byte {
	ident, dir, ok := parseOrd(src)
	if !ok {
		return append(buf, QuoteField(src)...)
	}
	buf = append(buf, QuoteField(ident)...)
	return append(buf, dir...)
}

func appendOrdPair(buf []byte, field string, dir string) []byte {
	buf = append(buf, QuoteField(field)...)
	buf = append(buf, ' ')
	return append(buf, dir...)
}
