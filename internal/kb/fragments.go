package kb

import (
	"fmt"
	"strings"

	"medrag/internal/normalize"
)

// Category groups the fragments of a drug or herb by subject.
type Category int

const (
	Mechanism Category = iota
	Pharmacokinetics
	Chemistry
	Origin
	Toxicity
	Onset
	Physicochemical
	numCategories
)

// Fragments holds the pre-formatted attribute lines of one domain (drugs or herbs),
// per category and entity id, in source row order.
type Fragments struct {
	byCategory [numCategories]map[int][]string
}

func newFragments() *Fragments {
	f := &Fragments{}
	for i := range f.byCategory {
		f.byCategory[i] = make(map[int][]string)
	}
	return f
}

func (f *Fragments) add(c Category, id int, text string) {
	f.byCategory[c][id] = append(f.byCategory[c][id], text)
}

// Get returns the fragments of entity id in category c.
func (f *Fragments) Get(c Category, id int) []string {
	return f.byCategory[c][id]
}

// First returns at most n fragments joined by newlines.
func (f *Fragments) First(c Category, id, n int) string {
	frags := f.Get(c, id)
	if len(frags) > n {
		frags = frags[:n]
	}
	return strings.Join(frags, "\n")
}

// All returns every fragment joined by newlines.
func (f *Fragments) All(c Category, id int) string {
	return strings.Join(f.Get(c, id), "\n")
}

// attributeTable describes how one attribute sheet turns into fragments.
type attributeTable struct {
	sheet    string
	category Category
	entityID func(normalize.Row) (int, bool)
	// format returns false when the row carries nothing worth keeping.
	format func(normalize.Row) (string, bool)
}

func idAt(i int) func(normalize.Row) (int, bool) {
	return func(r normalize.Row) (int, bool) { return normalize.Int(r.At(i)) }
}

func codeAt(i int) func(normalize.Row) (int, bool) {
	return func(r normalize.Row) (int, bool) { return normalize.CodePrefix(r.At(i)) }
}

// labeled renders one "- label: value" line per label, reading columns first, first+1, ...
func labeled(first int, labels ...string) func(normalize.Row) (string, bool) {
	return func(r normalize.Row) (string, bool) {
		lines := make([]string, len(labels))
		for i, label := range labels {
			lines[i] = fmt.Sprintf("- %s: %s", label, col(r, first+i))
		}
		return strings.Join(lines, "\n"), true
	}
}

var drugAttributes = []attributeTable{
	{
		sheet: SheetDrugMechanism, category: Mechanism, entityID: idAt(1),
		format: func(r normalize.Row) (string, bool) {
			return fmt.Sprintf("- Cơ chế %s: %s. Giải thích: %s", col(r, 2), col(r, 3), col(r, 4)), true
		},
	},
	{
		// Column 3 holds dosing and is never read.
		sheet: SheetDrugClinical, category: Mechanism, entityID: codeAt(1),
		format: func(r normalize.Row) (string, bool) {
			effect, note := col(r, 2), col(r, 4)
			if effect == "" && note == "" {
				return "", false
			}
			return fmt.Sprintf("- Tác dụng lâm sàng: %s. Ghi chú an toàn/đặc điểm: %s", effect, note), true
		},
	},
	{
		sheet: SheetDrugOnset, category: Onset, entityID: codeAt(1),
		format: func(r normalize.Row) (string, bool) {
			return fmt.Sprintf("- Thời gian khởi phát tác dụng: %s. Thời gian duy trì tác dụng: %s", col(r, 2), col(r, 3)), true
		},
	},
	{
		sheet: SheetDrugKinetics, category: Pharmacokinetics, entityID: idAt(0),
		format: labeled(1, "Hấp thu", "Phân bố", "Chuyển hóa", "Thải trừ"),
	},
	{
		sheet: SheetDrugChemistry, category: Chemistry, entityID: idAt(0),
		format: labeled(1, "Đặc điểm hóa học", "Độ tan", "Độ bền/ổn định", "Ghi chú thêm"),
	},
	{
		sheet: SheetDrugOrigin, category: Origin, entityID: idAt(0),
		format: labeled(1, "Nguồn gốc/hóa dược", "Quy trình/ứng dụng", "Dạng dùng điển hình", "Ghi chú"),
	},
	{
		sheet: SheetDrugToxicity, category: Toxicity, entityID: idAt(0),
		format: labeled(1, "Độc tính/biến cố", "Nhóm đối tượng cần thận trọng", "Tương tác/ghi chú khác"),
	},
	{
		sheet: SheetDrugPhysChem, category: Physicochemical, entityID: idAt(0),
		format: func(r normalize.Row) (string, bool) {
			return fmt.Sprintf("- Nhiệt độ nóng chảy (ước tính): %s–%s\n- pKa: %s; logP (tính thân dầu/nước): %s",
				col(r, 1), col(r, 2), col(r, 3), col(r, 4)), true
		},
	},
}

var herbAttributes = []attributeTable{
	{
		sheet: SheetHerbMechanism, category: Mechanism, entityID: idAt(1),
		format: func(r normalize.Row) (string, bool) {
			return fmt.Sprintf("- Cơ chế %s: %s. Giải thích (theo mô tả): %s", col(r, 2), col(r, 3), col(r, 4)), true
		},
	},
	{
		sheet: SheetHerbClinical, category: Mechanism, entityID: codeAt(1),
		format: func(r normalize.Row) (string, bool) {
			var effects []string
			for i := 2; i <= 4; i++ {
				if e := col(r, i); e != "" {
					effects = append(effects, e)
				}
			}
			if len(effects) == 0 {
				return "", false
			}
			return "- Tác dụng dược lực hỗ trợ: " + strings.Join(effects, "; "), true
		},
	},
	{
		sheet: SheetHerbOnset, category: Onset, entityID: codeAt(1),
		format: func(r normalize.Row) (string, bool) {
			return fmt.Sprintf("- Thời gian bắt đầu cảm nhận tác dụng: %s. Thời gian duy trì: %s", col(r, 2), col(r, 3)), true
		},
	},
	{
		sheet: SheetHerbKinetics, category: Pharmacokinetics, entityID: idAt(0),
		format: labeled(1, "Hấp thu & phân bố", "Thời gian/tính chất tác dụng", "Đặc điểm thải trừ/tích lũy", "Ghi chú thêm"),
	},
	{
		sheet: SheetHerbChemistry, category: Chemistry, entityID: idAt(0),
		format: labeled(1, "Thành phần hóa học chính", "Độ tan", "Ổn định với nhiệt/điều kiện", "Cách bảo quản"),
	},
	{
		sheet: SheetHerbOrigin, category: Origin, entityID: idAt(0),
		format: labeled(1, "Bộ phận dùng", "Vùng trồng/điều kiện", "Thời điểm thu hái", "Dạng sử dụng"),
	},
	{
		sheet: SheetHerbToxicity, category: Toxicity, entityID: idAt(0),
		format: labeled(1, "Độc tính/triệu chứng không mong muốn", "Nhóm đối tượng cần thận trọng", "Ghi chú về dữ liệu an toàn"),
	},
	{
		sheet: SheetHerbPhysChem, category: Physicochemical, entityID: idAt(0),
		format: labeled(1, "Vị, tính", "Đặc điểm tinh dầu/kết cấu", "Màu sắc & cảm quan", "Độ ổn định/ảnh hưởng môi trường"),
	},
}
