package output

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/luwae/permanent/internal/core/domain"
)

// TableFormatter formats data as aligned columns.
type TableFormatter struct {
	Wide      bool
	NoHeaders bool
	Color     bool
	Detail    bool
}

// Format formats data as a table.
// Supports: Table, *domain.Report, []T of structs, map[string]T.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	if data == nil {
		return nil
	}

	switch d := data.(type) {
	case *Table:
		return d.RenderWithOptions(w, f.NoHeaders)
	case Table:
		return d.RenderWithOptions(w, f.NoHeaders)
	case *domain.Report:
		return f.formatReport(w, d)
	case domain.Report:
		return f.formatReport(w, &d)
	}

	table, err := toTable(data, f.Wide)
	if err != nil {
		// Fallback to JSON for complex types
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)
	}

	return table.RenderWithOptions(w, f.NoHeaders)
}

// formatReport renders a report as three tables: summary, intervals and
// checkpoints. Wide or detail mode adds the state hashes of each row.
func (f *TableFormatter) formatReport(w io.Writer, r *domain.Report) error {
	showStates := f.Wide || f.Detail

	summary := &Table{Headers: []string{"FIELD", "VALUE"}}
	summary.AddRow("pmem images", fmt.Sprint(r.Summary.PMEMImages))
	summary.AddRow("nvme images", fmt.Sprint(r.Summary.NVMeImages))
	summary.AddRow("hybrid images", fmt.Sprint(r.Summary.HybridImages))
	summary.AddRow("semantic states", fmt.Sprint(r.Summary.SemanticStates))
	summary.AddRow("checkpoints", fmt.Sprint(r.Summary.Checkpoints))
	if r.RunID != "" {
		summary.AddRow("run id", r.RunID)
	}

	intervals := &Table{Headers: []string{"INTERVAL", "STATES", "VERDICT"}}
	if showStates {
		intervals.Headers = append(intervals.Headers, "STATE_HASHES")
	}
	for _, iv := range r.Intervals {
		row := []string{
			fmt.Sprintf("[%d..%d]", iv.Index, iv.Index+1),
			fmt.Sprint(iv.Count),
			Colorize(iv.Atomic, atomicWord(iv.Atomic), f.Color),
		}
		if showStates {
			row = append(row, joinStates(iv.States))
		}
		intervals.AddRow(row...)
	}

	checkpoints := &Table{Headers: []string{"CHECKPOINT", "TRACE_ID", "STATES", "VERDICT"}}
	if showStates {
		checkpoints.Headers = append(checkpoints.Headers, "STATE_HASHES")
	}
	for _, cv := range r.Checkpoints {
		row := []string{
			fmt.Sprint(cv.Index),
			string(cv.TraceID),
			fmt.Sprint(len(cv.States)),
			Colorize(cv.SFS, sfsWord(cv.SFS), f.Color),
		}
		if showStates {
			row = append(row, joinStates(cv.States))
		}
		checkpoints.AddRow(row...)
	}

	for i, t := range []*Table{summary, intervals, checkpoints} {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := t.RenderWithOptions(w, f.NoHeaders); err != nil {
			return err
		}
	}
	return nil
}

func joinStates(states []domain.StateHash) string {
	if len(states) == 0 {
		return "-"
	}
	parts := make([]string, len(states))
	for i, s := range states {
		parts[i] = string(s)
	}
	return strings.Join(parts, ",")
}

// toTable converts a slice of structs or a map to a Table.
func toTable(data any, wide bool) (*Table, error) {
	v := reflect.ValueOf(data)

	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		return sliceToTable(v, wide)
	case reflect.Map:
		return mapToTable(v)
	default:
		return nil, fmt.Errorf("unsupported type: %s", v.Kind())
	}
}

// sliceToTable converts a slice of structs to a table, one row per element.
// Fields tagged table:"-" are skipped; table:"wide" only shows in wide mode.
func sliceToTable(v reflect.Value, wide bool) (*Table, error) {
	if v.Len() == 0 {
		return &Table{}, nil
	}

	elemType := v.Type().Elem()
	if elemType.Kind() == reflect.Ptr {
		elemType = elemType.Elem()
	}
	if elemType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("unsupported element type: %s", elemType.Kind())
	}

	var headers []string
	var fieldIndices []int
	for i := 0; i < elemType.NumField(); i++ {
		field := elemType.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := field.Tag.Get("table")
		if tag == "-" || (strings.Contains(tag, "wide") && !wide) {
			continue
		}
		headers = append(headers, strings.ToUpper(headerName(field)))
		fieldIndices = append(fieldIndices, i)
	}

	table := &Table{Headers: headers}
	for i := 0; i < v.Len(); i++ {
		elem := v.Index(i)
		if elem.Kind() == reflect.Ptr {
			if elem.IsNil() {
				continue
			}
			elem = elem.Elem()
		}
		row := make([]string, 0, len(fieldIndices))
		for _, idx := range fieldIndices {
			row = append(row, formatValue(elem.Field(idx)))
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// mapToTable converts a map to a key-value table sorted by key.
func mapToTable(v reflect.Value) (*Table, error) {
	table := &Table{
		Headers: []string{"KEY", "VALUE"},
	}

	iter := v.MapRange()
	for iter.Next() {
		table.AddRow(formatValue(iter.Key()), formatValue(iter.Value()))
	}
	slices.SortFunc(table.Rows, func(a, b []string) int {
		return strings.Compare(a[0], b[0])
	})

	return table, nil
}

// headerName prefers the json tag name, falling back to SNAKE_CASE.
func headerName(field reflect.StructField) string {
	if jsonTag := field.Tag.Get("json"); jsonTag != "" {
		name, _, _ := strings.Cut(jsonTag, ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return toSnakeCase(field.Name)
}

// formatValue formats a reflect.Value for display.
func formatValue(v reflect.Value) string {
	if !v.IsValid() {
		return ""
	}

	if v.Kind() == reflect.Interface || v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}

	if v.Type() == reflect.TypeOf(time.Time{}) {
		t := v.Interface().(time.Time)
		if t.IsZero() {
			return "-"
		}
		return t.Local().Format("2006-01-02 15:04:05")
	}

	switch v.Kind() {
	case reflect.String:
		s := v.String()
		if s == "" {
			return "-"
		}
		return s
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fmt.Sprintf("%d", v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fmt.Sprintf("%d", v.Uint())
	case reflect.Float32, reflect.Float64:
		return fmt.Sprintf("%.2f", v.Float())
	case reflect.Bool:
		return fmt.Sprintf("%t", v.Bool())
	case reflect.Slice, reflect.Array:
		if v.Len() == 0 {
			return "-"
		}
		return fmt.Sprintf("[%d items]", v.Len())
	case reflect.Map:
		if v.Len() == 0 {
			return "-"
		}
		return fmt.Sprintf("{%d keys}", v.Len())
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}

// toSnakeCase converts CamelCase to Snake_Case; callers upper-case it.
func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteByte('_')
		}
		result.WriteRune(r)
	}
	return result.String()
}

// Table represents tabular data.
type Table struct {
	Headers []string
	Rows    [][]string
}

// RenderWithOptions renders the table, optionally without the header row.
func (t *Table) RenderWithOptions(w io.Writer, noHeaders bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if !noHeaders && len(t.Headers) > 0 {
		fmt.Fprintln(tw, strings.Join(t.Headers, "\t"))
	}
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	return tw.Flush()
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}
