package model

// ShiftBlock is one of the four weekly scheduling units. The facility runs
// an 8-day rotating pattern, so a rota week holds two day shifts and two
// night shifts.
type ShiftBlock string

const (
	ShiftDay1   ShiftBlock = "DAY1"
	ShiftDay2   ShiftBlock = "DAY2"
	ShiftNight1 ShiftBlock = "NIGHT1"
	ShiftNight2 ShiftBlock = "NIGHT2"
)

// ShiftBlocks lists the blocks in allocation order. The order matters: it
// decides which block gets first pick of scarce high-skill operators.
var ShiftBlocks = []ShiftBlock{ShiftDay1, ShiftDay2, ShiftNight1, ShiftNight2}

// IsNight reports whether the block is a night shift
func (b ShiftBlock) IsNight() bool {
	return b == ShiftNight1 || b == ShiftNight2
}

// Kind returns the shift kind recorded in allocation history ("Day" or "Night")
func (b ShiftBlock) Kind() string {
	if b.IsNight() {
		return "Night"
	}
	return "Day"
}

// Availability holds the four staff-plan cells for one operator for one week.
// A cell is free text: "Y" and shift codes mean working, "H"/"SICK"/"OFF"
// mean unavailable, empty means no entry.
type Availability struct {
	Day1   string
	Day2   string
	Night1 string
	Night2 string
}

// Cell returns the availability cell for the given shift block
func (a Availability) Cell(block ShiftBlock) string {
	switch block {
	case ShiftDay1:
		return a.Day1
	case ShiftDay2:
		return a.Day2
	case ShiftNight1:
		return a.Night1
	case ShiftNight2:
		return a.Night2
	}
	return ""
}

// SkillScores holds the derived 0-3 score per tracked skill area for one
// operator, computed from the capability record's N/B/C/S ratings.
type SkillScores struct {
	FLT            int
	Canning        int
	MAB1           int
	MAB2           int
	Corona         int
	KeggingInside  int
	KeggingOutside int
	WMS            int
	SAP            int
	SAY            int
	Packaging      int
	Loaders        int
	Pilots         int
}

// Operator is one worker in the allocation pool. Built by the pool builder
// from a staff plan row joined to the operator profile and capability record.
// Read-only within the engine.
type Operator struct {
	ID           string
	Name         string
	IsAgency     bool
	Shift        string // home shift label, empty for the primary shift
	Role         string // free-text category used for role bonus matching
	Constraints  string // free text, parsed for the documented substring rules
	BestSuited   map[string]bool
	Availability Availability
	Skills       SkillScores
}

// CapabilityRatings is the raw capability record for one operator, with each
// skill area rated as one of N/B/C/S (free text in practice).
type CapabilityRatings struct {
	FLT            string
	Canning        string
	MAB1           string
	MAB2           string
	Corona         string
	KeggingInside  string
	KeggingOutside string
	WMS            string
	SAP            string
	SAY            string
	Packaging      string
	Loaders        string
	Pilots         string
}

// StaffPlanRow is one weekly staff plan row joined to the operator profile
// and capability record, as read from the store. Ratings is nil when the
// operator has no capability record.
type StaffPlanRow struct {
	OperatorID   string
	Name         string
	IsActive     bool
	IsAgency     bool
	Shift        string
	Role         string
	Constraints  string
	BestSuited   map[string]bool
	Availability Availability
	Ratings      *CapabilityRatings
}

// DailyLinePlan is one day's production line plan
type DailyLinePlan struct {
	Date             string
	Mak1Running      bool
	Mac1Running      bool
	Mac2Running      bool
	Mab1Running      bool
	Mab2Running      bool
	Mab3Running      bool
	CoronaRunning    bool
	PackagingRunning bool
	TentsRunning     bool
	CanningReduced   bool
	KegLoadSlots     int
	Mak1LoadSlots    int
	TentsLoadSlots   int
	PilotsRequired   int
}

// WeekLinePlan is the week's line plan aggregated across the daily plans:
// running flags are OR-aggregated, slot counts and pilots are MAX-aggregated.
type WeekLinePlan struct {
	Mak1Running      bool
	Mac1Running      bool
	Mac2Running      bool
	Mab1Running      bool
	Mab2Running      bool
	Mab3Running      bool
	CoronaRunning    bool
	PackagingRunning bool
	TentsRunning     bool
	CanningReduced   bool
	KegLoadSlots     int
	Mak1LoadSlots    int
	TentsLoadSlots   int
	PilotsRequired   int
}

// Allocation assigns one operator (or agency labour) to one area for one
// shift block within one week. Engine rows carry an OperatorID and leave
// AssignedTo empty; agency placeholder rows added manually carry no
// OperatorID and the literal "Agency" in AssignedTo. Downstream consumers
// classify rows on exactly that split, so the engine must never write a
// name into AssignedTo. OperatorName is a display convenience resolved
// from the pool (or the operators table on read) and is not persisted.
// Break-cover rows are manual additions: the engine always writes
// IsBreakCover false and HoursRequired 0.
type Allocation struct {
	WeekCommencing string     `json:"week_commencing"`
	Area           string     `json:"area"`
	ShiftBlock     ShiftBlock `json:"shift_block"`
	OperatorID     string     `json:"operator_id,omitempty"`
	OperatorName   string     `json:"operator_name,omitempty"`
	AssignedTo     string     `json:"assigned_to,omitempty"`
	Score          int        `json:"score"`
	IsBreakCover   bool       `json:"is_break_cover"`
	HoursRequired  float64    `json:"hours_required"`
}

// Recommendation is one ranked cover candidate attached to a gap
type Recommendation struct {
	OperatorID string `json:"operator_id"`
	Name       string `json:"name"`
	Score      int    `json:"score"`
}

// Gap is unmet demand for one area and shift block after allocation, with
// up to five ranked cover candidates.
type Gap struct {
	WeekCommencing  string           `json:"week_commencing"`
	ShiftBlock      ShiftBlock       `json:"shift_block"`
	Area            string           `json:"area"`
	MissingCount    int              `json:"missing_count"`
	Recommendations []Recommendation `json:"recommendations"`
}

// HistoryRecord is an immutable fact that an operator worked an area in a
// week. Appended once per allocation at generation time and used only for
// rotation fairness scoring in future weeks.
type HistoryRecord struct {
	OperatorID     string
	WeekCommencing string
	DayName        string // the shift block key the allocation was made for
	Shift          string // "Day" or "Night"
	Area           string
	Position       string // same as Area for engine-written records
}
