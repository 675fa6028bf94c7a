package highlight

// Category names the semantic role of a highlighted span.
type Category string

const (
	CategoryTimestamp     Category = "timestamp"
	CategoryFrame         Category = "frame"
	CategorySubsystemCore Category = "subsystem-core"
	CategorySubsystemApp  Category = "subsystem-app"
	CategoryLocation      Category = "location"
	CategoryError         Category = "error"
	CategoryWarning       Category = "warning"
	CategoryInfo          Category = "info"
	CategoryDebug         Category = "debug"
	CategoryJSON          Category = "json"
)

// Categories lists every category in rendering order.
func Categories() []Category {
	return []Category{
		CategoryError,
		CategoryWarning,
		CategoryInfo,
		CategoryDebug,
		CategoryTimestamp,
		CategoryFrame,
		CategorySubsystemCore,
		CategorySubsystemApp,
		CategoryLocation,
		CategoryJSON,
	}
}

// IsSeverity reports whether c is one of the line-level severity categories.
func (c Category) IsSeverity() bool {
	switch c {
	case CategoryError, CategoryWarning, CategoryInfo, CategoryDebug:
		return true
	default:
		return false
	}
}

// Span annotates Length bytes of a buffer starting at Start.
type Span struct {
	Start    int
	Length   int
	Category Category
}

// End returns the exclusive end offset.
func (s Span) End() int {
	return s.Start + s.Length
}
