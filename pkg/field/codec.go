package field

import (
	"encoding/hex"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	gfaerrors "github.com/matzehuels/gfagraph/pkg/errors"
)

// codec bundles the three rules of a datatype. validate receives a value of
// any Go type and reports a shape violation; it does not need to build the
// TypeMismatchError itself.
type codec struct {
	decode   func(tok string) (any, error)
	encode   func(v any) string
	validate func(v any) error
}

var (
	reChar       = regexp.MustCompile(`^[!-~]$`)
	reInt        = regexp.MustCompile(`^[-+]?[0-9]+$`)
	reUint       = regexp.MustCompile(`^[0-9]+$`)
	reFloat      = regexp.MustCompile(`^[-+]?[0-9]*\.?[0-9]+([eE][-+]?[0-9]+)?$`)
	reString     = regexp.MustCompile(`^[ !-~]*$`)
	reJSON       = regexp.MustCompile(`^[ !-~]+$`)
	reHex        = regexp.MustCompile(`^[0-9A-Fa-f]+$`)
	reName1      = regexp.MustCompile(`^[!-)+-<>-~][!-~]*$`)
	reOriented1  = regexp.MustCompile(`^([!-)+-<>-~][!-~]*)([+-])$`)
	reCIGAR      = regexp.MustCompile(`^([0-9]+[MIDNSHPX=])+$`)
	reCIGAROp    = regexp.MustCompile(`([0-9]+)([MIDNSHPX=])`)
	reSequence1  = regexp.MustCompile(`^[A-Za-z=.]+$`)
	reIdent2     = regexp.MustCompile(`^[!-~]+$`)
	reOriented2  = regexp.MustCompile(`^([!-~]+)([+-])$`)
	rePosition2  = regexp.MustCompile(`^[0-9]+\$?$`)
	reTrace      = regexp.MustCompile(`^[0-9]+(,[0-9]+)*$`)
	reIntArray   = regexp.MustCompile(`^[cCsSiI](,[-+]?[0-9]+)+$`)
	reFloatArray = regexp.MustCompile(`^f(,[-+]?[0-9]*\.?[0-9]+([eE][-+]?[0-9]+)?)+$`)
)

var codecs map[Datatype]codec

func init() {
	codecs = map[Datatype]codec{
		Char:                {decodeMatch(Char, reChar), encodeString, validateMatch(reChar)},
		Int:                 {decodeInt, encodeInt, validateInt(false)},
		Float:               {decodeFloat, encodeFloat, validateFloat},
		String:              {decodeMatch(String, reString), encodeString, validateMatch(reString)},
		JSON:                {decodeJSON, encodeJSON, validateJSON},
		Bytes:               {decodeBytes, encodeStringer, validateBytes},
		Numbers:             {decodeNumbers, encodeNumbers, validateNumbers},
		Comment:             {decodeNoBreak(Comment, "\n"), encodeString, validateNoBreak("\n")},
		Generic:             {decodeNoBreak(Generic, "\t\n"), encodeString, validateNoBreak("\t\n")},
		CustomType:          {decodeMatch(CustomType, reIdent2), encodeString, validateMatch(reIdent2)},
		SegmentName1:        {decodeName1(SegmentName1), encodeString, validateName1},
		PathName1:           {decodeName1(PathName1), encodeString, validateName1},
		Orient:              {decodeOrientation, encodeStringer, validateOrientation},
		OrientedList1:       {decodeOrientedList(OrientedList1, splitOriented1, reOriented1), encodeOrientedList(","), validateOrientedList(validName1)},
		Alignment1:          {placeholderOr(decodeCIGAR(Alignment1)), encodeStringer, validatePlaceholderOr(validateCIGAR)},
		AlignmentList1:      {placeholderOr(decodeCIGARList), encodeCIGARList, validatePlaceholderOr(validateCIGARList)},
		Sequence1:           {placeholderOr(decodeMatch(Sequence1, reSequence1)), encodeStringer, validatePlaceholderOr(validateMatch(reSequence1))},
		Position1:           {decodeUint(Position1), encodeInt, validateInt(true)},
		Identifier2:         {decodeIdentifier2, encodeString, validateIdentifier2},
		OptionalIdentifier2: {placeholderOr(decodeIdentifier2), encodeStringer, validatePlaceholderOr(validateIdentifier2)},
		OrientedIdentifier2: {decodeOrientedIdentifier2, encodeStringer, validateOrientedIdentifier2},
		IdentifierList2:     {decodeIdentifierList2, encodeIdentifierList2, validateIdentifierList2},
		OrientedList2:       {decodeOrientedList(OrientedList2, splitSpace, reOriented2), encodeOrientedList(" "), validateOrientedList(reIdent2.MatchString)},
		Position2:           {decodePosition2, encodeStringer, validatePosition2},
		Sequence2:           {placeholderOr(decodeMatch(Sequence2, reIdent2)), encodeStringer, validatePlaceholderOr(validateIdentifier2)},
		Alignment2:          {placeholderOr(decodeAlignment2), encodeStringer, validatePlaceholderOr(validateAlignment2)},
		OptionalInt:         {placeholderOr(decodeInt), encodeStringer, validatePlaceholderOr(validateInt(false))},
	}
}

// Decode parses a token into the typed value of dt. Malformed tokens fail
// with a FORMAT_ERROR naming the token and the datatype.
func Decode(dt Datatype, tok string) (any, error) {
	c, ok := codecs[dt]
	if !ok {
		return nil, gfaerrors.New(gfaerrors.ErrCodeInvalidInput, "unknown datatype %q", dt)
	}
	return c.decode(tok)
}

// Encode renders v as the canonical token of dt. Values that do not validate
// fail with a VALUE_ERROR wrapping the validation failure.
func Encode(dt Datatype, v any) (string, error) {
	c, ok := codecs[dt]
	if !ok {
		return "", gfaerrors.New(gfaerrors.ErrCodeInvalidInput, "unknown datatype %q", dt)
	}
	if err := Validate(dt, v, ""); err != nil {
		return "", gfaerrors.Wrap(gfaerrors.ErrCodeValue, err, "cannot encode value as %s", dt)
	}
	return c.encode(v), nil
}

// Validate checks that v has the Go type and shape required by dt. Failures
// are reported as a *errors.TypeMismatchError carrying fieldName.
func Validate(dt Datatype, v any, fieldName string) error {
	c, ok := codecs[dt]
	if !ok {
		return gfaerrors.New(gfaerrors.ErrCodeInvalidInput, "unknown datatype %q", dt)
	}
	if err := c.validate(v); err != nil {
		return &gfaerrors.TypeMismatchError{
			Field:    fieldName,
			Expected: string(dt),
			Actual:   describe(v),
			Cause:    err,
		}
	}
	return nil
}

// Coerce converts a caller-supplied value into the representation used for
// dt: Go integer kinds become int64, float32 becomes float64, []byte becomes
// ByteArray, and strings are decoded unless dt is itself string-valued. The
// result is not validated.
func Coerce(dt Datatype, v any) (any, error) {
	if s, ok := v.(string); ok {
		if stringValued(dt) {
			if s == "*" && dt.AllowsPlaceholder() {
				return Placeholder{}, nil
			}
			return s, nil
		}
		return Decode(dt, s)
	}
	if p, ok := v.(*Placeholder); ok && p != nil {
		return Placeholder{}, nil
	}
	if b, ok := v.([]byte); ok && dt == Bytes {
		return ByteArray(b), nil
	}
	if f, ok := v.(float32); ok {
		return float64(f), nil
	}
	if n, ok := asInt64(v); ok {
		switch dt {
		case Float:
			return float64(n), nil
		case Position2:
			return Position{Value: n}, nil
		}
		return n, nil
	}
	return v, nil
}

// DefaultTagDatatype infers the tag datatype for a value set without an
// explicit type: integers map to i, floats to f, strings to Z, byte arrays to
// H, numeric arrays to B and everything else to J.
func DefaultTagDatatype(v any) Datatype {
	switch x := v.(type) {
	case *Array:
		return x.Datatype()
	case string:
		return String
	case float32, float64:
		return Float
	case ByteArray, []byte:
		return Bytes
	case NumericArray:
		return Numbers
	}
	if _, ok := asInt64(v); ok {
		return Int
	}
	return JSON
}

func stringValued(dt Datatype) bool {
	switch dt {
	case Char, String, Comment, Generic, CustomType, SegmentName1, PathName1,
		Sequence1, Identifier2, OptionalIdentifier2, Sequence2:
		return true
	}
	return false
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	}
	return 0, false
}

func describe(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T(%v)", v, v)
}

func formatError(dt Datatype, tok, reason string) error {
	return gfaerrors.New(gfaerrors.ErrCodeFormat, "invalid %s token %q: %s", dt, tok, reason)
}

// ---- decoders ----

func decodeMatch(dt Datatype, re *regexp.Regexp) func(string) (any, error) {
	return func(tok string) (any, error) {
		if !re.MatchString(tok) {
			return nil, formatError(dt, tok, "does not match "+re.String())
		}
		return tok, nil
	}
}

func decodeNoBreak(dt Datatype, forbidden string) func(string) (any, error) {
	return func(tok string) (any, error) {
		if strings.ContainsAny(tok, forbidden) {
			return nil, formatError(dt, tok, "contains a line or field separator")
		}
		return tok, nil
	}
}

func placeholderOr(decode func(string) (any, error)) func(string) (any, error) {
	return func(tok string) (any, error) {
		if tok == "*" {
			return Placeholder{}, nil
		}
		return decode(tok)
	}
}

func decodeInt(tok string) (any, error) {
	if !reInt.MatchString(tok) {
		return nil, formatError(Int, tok, "not an integer")
	}
	n, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return nil, formatError(Int, tok, "out of range")
	}
	return n, nil
}

func decodeUint(dt Datatype) func(string) (any, error) {
	return func(tok string) (any, error) {
		if !reUint.MatchString(tok) {
			return nil, formatError(dt, tok, "not a non-negative integer")
		}
		n, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return nil, formatError(dt, tok, "out of range")
		}
		return n, nil
	}
}

func decodeFloat(tok string) (any, error) {
	if !reFloat.MatchString(tok) {
		return nil, formatError(Float, tok, "not a number")
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return nil, formatError(Float, tok, "out of range")
	}
	return f, nil
}

func decodeJSON(tok string) (any, error) {
	if !reJSON.MatchString(tok) {
		return nil, formatError(JSON, tok, "contains non-printable characters")
	}
	var v any
	if err := json.Unmarshal([]byte(tok), &v); err != nil {
		return nil, gfaerrors.Wrap(gfaerrors.ErrCodeFormat, err, "invalid %s token %q", JSON, tok)
	}
	return v, nil
}

func decodeBytes(tok string) (any, error) {
	if !reHex.MatchString(tok) {
		return nil, formatError(Bytes, tok, "not hexadecimal")
	}
	if len(tok)%2 != 0 {
		return nil, formatError(Bytes, tok, "odd number of digits")
	}
	b, err := hex.DecodeString(tok)
	if err != nil {
		return nil, gfaerrors.Wrap(gfaerrors.ErrCodeFormat, err, "invalid %s token %q", Bytes, tok)
	}
	return ByteArray(b), nil
}

func decodeNumbers(tok string) (any, error) {
	parts := strings.Split(tok, ",")
	if reFloatArray.MatchString(tok) {
		out := NumericArray{Subtype: 'f', Floats: make([]float64, 0, len(parts)-1)}
		for _, p := range parts[1:] {
			f, err := strconv.ParseFloat(p, 64)
			if err != nil {
				return nil, formatError(Numbers, tok, "element "+p+" out of range")
			}
			out.Floats = append(out.Floats, f)
		}
		return out, nil
	}
	if !reIntArray.MatchString(tok) {
		return nil, formatError(Numbers, tok, "not a numeric array")
	}
	out := NumericArray{Subtype: tok[0], Ints: make([]int64, 0, len(parts)-1)}
	bounds := numericRange[out.Subtype]
	for _, p := range parts[1:] {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil || n < bounds[0] || n > bounds[1] {
			return nil, formatError(Numbers, tok, "element "+p+" out of range for subtype "+string(out.Subtype))
		}
		out.Ints = append(out.Ints, n)
	}
	return out, nil
}

func decodeOrientation(tok string) (any, error) {
	if tok != "+" && tok != "-" {
		return nil, formatError(Orient, tok, "must be + or -")
	}
	return Orientation(tok[0]), nil
}

// validName1 reports whether s is a GFA1 segment or path name. Names may
// contain commas, but not "+," or "-,", which delimit oriented lists.
func validName1(s string) bool {
	return reName1.MatchString(s) && !strings.Contains(s, "+,") && !strings.Contains(s, "-,")
}

func decodeName1(dt Datatype) func(string) (any, error) {
	return func(tok string) (any, error) {
		if !validName1(tok) {
			return nil, formatError(dt, tok, "not a segment name")
		}
		return tok, nil
	}
}

// splitOriented1 splits a GFA1 oriented list on the commas that follow an
// orientation sign.
func splitOriented1(tok string) []string {
	var parts []string
	start := 0
	for i := 1; i < len(tok); i++ {
		if tok[i] == ',' && (tok[i-1] == '+' || tok[i-1] == '-') {
			parts = append(parts, tok[start:i])
			start = i + 1
		}
	}
	return append(parts, tok[start:])
}

func splitSpace(tok string) []string { return strings.Split(tok, " ") }

func decodeOrientedList(dt Datatype, split func(string) []string, re *regexp.Regexp) func(string) (any, error) {
	return func(tok string) (any, error) {
		parts := split(tok)
		out := make([]OrientedRef, 0, len(parts))
		for _, p := range parts {
			m := re.FindStringSubmatch(p)
			if m == nil {
				return nil, formatError(dt, tok, "invalid element "+strconv.Quote(p))
			}
			out = append(out, OrientedRef{Name: m[1], Orient: Orientation(m[2][0])})
		}
		return out, nil
	}
}

func decodeCIGAR(dt Datatype) func(string) (any, error) {
	return func(tok string) (any, error) {
		c, ok := parseCIGAR(tok)
		if !ok {
			return nil, formatError(dt, tok, "not a CIGAR string")
		}
		return c, nil
	}
}

func parseCIGAR(tok string) (CIGAR, bool) {
	if !reCIGAR.MatchString(tok) {
		return nil, false
	}
	var out CIGAR
	for _, m := range reCIGAROp.FindAllStringSubmatch(tok, -1) {
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return nil, false
		}
		out = append(out, CIGAROp{Len: n, Op: m[2][0]})
	}
	return out, true
}

func decodeCIGARList(tok string) (any, error) {
	parts := strings.Split(tok, ",")
	out := make([]CIGAR, 0, len(parts))
	for _, p := range parts {
		c, ok := parseCIGAR(p)
		if !ok {
			return nil, formatError(AlignmentList1, tok, "invalid CIGAR "+strconv.Quote(p))
		}
		out = append(out, c)
	}
	return out, nil
}

func decodeIdentifier2(tok string) (any, error) {
	if tok == "*" || !reIdent2.MatchString(tok) {
		return nil, formatError(Identifier2, tok, "not an identifier")
	}
	return tok, nil
}

func decodeOrientedIdentifier2(tok string) (any, error) {
	m := reOriented2.FindStringSubmatch(tok)
	if m == nil || m[1] == "*" {
		return nil, formatError(OrientedIdentifier2, tok, "not an oriented identifier")
	}
	return OrientedRef{Name: m[1], Orient: Orientation(m[2][0])}, nil
}

func decodeIdentifierList2(tok string) (any, error) {
	parts := strings.Split(tok, " ")
	for _, p := range parts {
		if p == "*" || !reIdent2.MatchString(p) {
			return nil, formatError(IdentifierList2, tok, "invalid element "+strconv.Quote(p))
		}
	}
	return parts, nil
}

func decodePosition2(tok string) (any, error) {
	if !rePosition2.MatchString(tok) {
		return nil, formatError(Position2, tok, "not a position")
	}
	last := strings.HasSuffix(tok, "$")
	n, err := strconv.ParseInt(strings.TrimSuffix(tok, "$"), 10, 64)
	if err != nil {
		return nil, formatError(Position2, tok, "out of range")
	}
	return Position{Value: n, Last: last}, nil
}

func decodeAlignment2(tok string) (any, error) {
	if c, ok := parseCIGAR(tok); ok {
		return c, nil
	}
	if reTrace.MatchString(tok) {
		parts := strings.Split(tok, ",")
		out := make(Trace, 0, len(parts))
		for _, p := range parts {
			n, err := strconv.ParseInt(p, 10, 64)
			if err != nil {
				return nil, formatError(Alignment2, tok, "trace value out of range")
			}
			out = append(out, n)
		}
		return out, nil
	}
	return nil, formatError(Alignment2, tok, "neither a CIGAR string nor a trace")
}

// ---- encoders ----

func encodeString(v any) string { return v.(string) }

func encodeStringer(v any) string {
	switch x := v.(type) {
	case fmt.Stringer:
		return x.String()
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	}
	return fmt.Sprint(v)
}

func encodeInt(v any) string { return strconv.FormatInt(v.(int64), 10) }

func encodeFloat(v any) string { return strconv.FormatFloat(v.(float64), 'g', -1, 64) }

func encodeJSON(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func encodeNumbers(v any) string {
	n := v.(NumericArray)
	var b strings.Builder
	b.WriteByte(n.Subtype)
	if n.Subtype == 'f' {
		for _, f := range n.Floats {
			b.WriteByte(',')
			b.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
		}
		return b.String()
	}
	for _, i := range n.Ints {
		b.WriteByte(',')
		b.WriteString(strconv.FormatInt(i, 10))
	}
	return b.String()
}

func encodeOrientedList(sep string) func(any) string {
	return func(v any) string {
		refs := v.([]OrientedRef)
		parts := make([]string, len(refs))
		for i, r := range refs {
			parts[i] = r.String()
		}
		return strings.Join(parts, sep)
	}
}

func encodeCIGARList(v any) string {
	if IsPlaceholder(v) {
		return "*"
	}
	list := v.([]CIGAR)
	parts := make([]string, len(list))
	for i, c := range list {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",")
}

func encodeIdentifierList2(v any) string { return strings.Join(v.([]string), " ") }

// ---- validators ----

func validateMatch(re *regexp.Regexp) func(any) error {
	return func(v any) error {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("not a string")
		}
		if !re.MatchString(s) {
			return fmt.Errorf("%q does not match %s", s, re)
		}
		return nil
	}
}

func validateNoBreak(forbidden string) func(any) error {
	return func(v any) error {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("not a string")
		}
		if strings.ContainsAny(s, forbidden) {
			return fmt.Errorf("contains a line or field separator")
		}
		return nil
	}
}

func validatePlaceholderOr(validate func(any) error) func(any) error {
	return func(v any) error {
		if IsPlaceholder(v) {
			return nil
		}
		return validate(v)
	}
}

func validateInt(nonNegative bool) func(any) error {
	return func(v any) error {
		n, ok := v.(int64)
		if !ok {
			return fmt.Errorf("not an int64")
		}
		if nonNegative && n < 0 {
			return fmt.Errorf("negative value %d", n)
		}
		return nil
	}
}

func validateFloat(v any) error {
	f, ok := v.(float64)
	if !ok {
		return fmt.Errorf("not a float64")
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("not a finite number")
	}
	return nil
}

func validateJSON(v any) error {
	if v == nil {
		return fmt.Errorf("nil JSON value")
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if !reJSON.Match(b) {
		return fmt.Errorf("encodes to non-printable JSON")
	}
	return nil
}

func validateBytes(v any) error {
	b, ok := v.(ByteArray)
	if !ok {
		return fmt.Errorf("not a ByteArray")
	}
	if len(b) == 0 {
		return fmt.Errorf("empty byte array")
	}
	return nil
}

func validateNumbers(v any) error {
	n, ok := v.(NumericArray)
	if !ok {
		return fmt.Errorf("not a NumericArray")
	}
	if n.Subtype == 'f' {
		if len(n.Floats) == 0 || len(n.Ints) != 0 {
			return fmt.Errorf("float array must hold only Floats")
		}
		for _, f := range n.Floats {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return fmt.Errorf("not a finite number")
			}
		}
		return nil
	}
	bounds, ok := numericRange[n.Subtype]
	if !ok {
		return fmt.Errorf("unknown subtype %q", n.Subtype)
	}
	if len(n.Ints) == 0 || len(n.Floats) != 0 {
		return fmt.Errorf("integer array must hold only Ints")
	}
	for _, i := range n.Ints {
		if i < bounds[0] || i > bounds[1] {
			return fmt.Errorf("value %d out of range for subtype %c", i, n.Subtype)
		}
	}
	return nil
}

func validateOrientation(v any) error {
	o, ok := v.(Orientation)
	if !ok {
		return fmt.Errorf("not an Orientation")
	}
	if !o.Valid() {
		return fmt.Errorf("invalid orientation %q", byte(o))
	}
	return nil
}

func validateOrientedList(validName func(string) bool) func(any) error {
	return func(v any) error {
		refs, ok := v.([]OrientedRef)
		if !ok {
			return fmt.Errorf("not a []OrientedRef")
		}
		if len(refs) == 0 {
			return fmt.Errorf("empty list")
		}
		for _, r := range refs {
			if r.Name == "*" || !validName(r.Name) || !r.Orient.Valid() {
				return fmt.Errorf("invalid element %q", r.String())
			}
		}
		return nil
	}
}

func validateName1(v any) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("not a string")
	}
	if !validName1(s) {
		return fmt.Errorf("%q is not a segment name", s)
	}
	return nil
}

func validateCIGAR(v any) error {
	c, ok := v.(CIGAR)
	if !ok {
		return fmt.Errorf("not a CIGAR")
	}
	if len(c) == 0 {
		return fmt.Errorf("empty CIGAR")
	}
	for _, op := range c {
		if op.Len < 0 || !strings.ContainsRune(cigarOps, rune(op.Op)) {
			return fmt.Errorf("invalid operation %d%c", op.Len, op.Op)
		}
	}
	return nil
}

func validateCIGARList(v any) error {
	list, ok := v.([]CIGAR)
	if !ok {
		return fmt.Errorf("not a []CIGAR")
	}
	if len(list) == 0 {
		return fmt.Errorf("empty list")
	}
	for _, c := range list {
		if err := validateCIGAR(c); err != nil {
			return err
		}
	}
	return nil
}

func validateIdentifier2(v any) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("not a string")
	}
	if s == "*" || !reIdent2.MatchString(s) {
		return fmt.Errorf("%q is not an identifier", s)
	}
	return nil
}

func validateOrientedIdentifier2(v any) error {
	r, ok := v.(OrientedRef)
	if !ok {
		return fmt.Errorf("not an OrientedRef")
	}
	if err := validateIdentifier2(r.Name); err != nil {
		return err
	}
	if !r.Orient.Valid() {
		return fmt.Errorf("invalid orientation %q", byte(r.Orient))
	}
	return nil
}

func validateIdentifierList2(v any) error {
	ids, ok := v.([]string)
	if !ok {
		return fmt.Errorf("not a []string")
	}
	if len(ids) == 0 {
		return fmt.Errorf("empty list")
	}
	for _, id := range ids {
		if err := validateIdentifier2(id); err != nil {
			return err
		}
	}
	return nil
}

func validatePosition2(v any) error {
	p, ok := v.(Position)
	if !ok {
		return fmt.Errorf("not a Position")
	}
	if p.Value < 0 {
		return fmt.Errorf("negative position %d", p.Value)
	}
	return nil
}

func validateAlignment2(v any) error {
	switch a := v.(type) {
	case CIGAR:
		return validateCIGAR(a)
	case Trace:
		if len(a) == 0 {
			return fmt.Errorf("empty trace")
		}
		for _, n := range a {
			if n < 0 {
				return fmt.Errorf("negative trace value %d", n)
			}
		}
		return nil
	}
	return fmt.Errorf("not a CIGAR or Trace")
}
