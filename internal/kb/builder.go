package kb

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"medrag/internal/domain"
	"medrag/internal/normalize"
	"medrag/internal/source"
)

// ErrMissingRootTable is returned when the disease table is absent.
var ErrMissingRootTable = errors.New("missing root disease table")

const (
	mechanismSummaryLimit = 3
	kineticsSummaryLimit  = 1
	onsetSummaryLimit     = 1

	// summary value for a disease with no linked drugs or herbs
	noData = "Chưa có dữ liệu"
)

// DisclaimerText is the body of the single disclaimer document.
const DisclaimerText = "Tất cả thông tin về bệnh, thuốc tây và thảo dược trong cơ sở dữ liệu này " +
	"chỉ mang tính chất tham khảo, dùng cho mục đích giáo dục và hỗ trợ tra cứu.\n" +
	"Thông tin không phải là đơn thuốc, không thay thế cho chẩn đoán hoặc điều trị trực tiếp.\n" +
	"Người dùng cần tham khảo ý kiến bác sĩ hoặc nhân viên y tế trước khi bắt đầu, " +
	"thay đổi hoặc ngừng bất kỳ thuốc hay thảo dược nào."

// Build joins the source tables into a knowledge base. Only the disease table
// is required; every other missing table just contributes nothing.
func Build(tables source.Tables) (*KnowledgeBase, error) {
	b := &builder{
		logger:        slog.Default().With("component", "kb"),
		diseaseNames:  make(map[int]string),
		symptoms:      make(map[int]SymptomInfo),
		diseaseGroups: make(map[int][]string),
		drugs:         make(map[int]Drug),
		herbs:         make(map[int]Herb),
		drugFrags:     newFragments(),
		herbFrags:     newFragments(),
		diseaseDrugs:  make(map[int][]int),
		diseaseHerbs:  make(map[int][]int),
	}

	diseases, ok := readTable(tables, SheetDiseases, diseaseRecord)
	if !ok {
		return nil, fmt.Errorf("%w: sheet %s", ErrMissingRootTable, SheetDiseases)
	}
	for _, d := range diseases {
		b.diseaseNames[d.ID] = d.Name
	}
	b.loadSymptoms(tables)
	b.loadGroups(tables)
	b.loadEntities(tables)

	drugLinks, _ := readTable(tables, SheetDiseaseDrugs, drugLinkRecord)
	for _, l := range drugLinks {
		b.addDrugLink(l)
	}
	herbLinks, _ := readTable(tables, SheetDiseaseHerbs, herbLinkRecord)
	for _, l := range herbLinks {
		b.addHerbLink(l)
	}
	for _, id := range sortedKeys(b.diseaseNames) {
		b.addDiseaseSummary(id)
	}
	for _, id := range sortedKeys(b.drugs) {
		b.addDrugDetail(b.drugs[id])
	}
	for _, id := range sortedKeys(b.herbs) {
		b.addHerbDetail(b.herbs[id])
	}
	b.emit("Disclaimer y khoa chung", domain.DocDisclaimer, DisclaimerText)

	kb := &KnowledgeBase{
		documents:    b.docs,
		diseaseNames: b.diseaseNames,
		symptoms:     b.symptoms,
		symptomOrder: b.symptomOrder,
	}
	b.logger.Info("knowledge base built", kb.Stats().Args()...)
	return kb, nil
}

// builder carries the lookup maps of one build. Nothing outlives Build except
// the documents, disease names and symptoms handed to the KnowledgeBase.
type builder struct {
	logger *slog.Logger
	docs   []domain.Document

	diseaseNames  map[int]string
	symptoms      map[int]SymptomInfo
	// disease ids in first-seen symptom sheet order
	symptomOrder  []int
	diseaseGroups map[int][]string

	drugs     map[int]Drug
	herbs     map[int]Herb
	drugFrags *Fragments
	herbFrags *Fragments

	// related entity ids per known disease, in link order
	diseaseDrugs map[int][]int
	diseaseHerbs map[int][]int
}

// readTable parses every row of sheet with parse and drops rows whose ids
// do not parse. ok is false when the sheet is absent.
func readTable[T any](tables source.Tables, sheet string, parse func(normalize.Row) (T, bool)) ([]T, bool) {
	rows, ok := tables.Table(sheet)
	if !ok {
		return nil, false
	}
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if rec, ok := parse(r); ok {
			out = append(out, rec)
		}
	}
	return out, true
}

func (b *builder) emit(title string, t domain.DocType, text string) {
	b.docs = append(b.docs, domain.Document{
		ID:    len(b.docs) + 1,
		Title: title,
		Type:  t,
		Text:  text,
	})
}

func (b *builder) loadSymptoms(tables source.Tables) {
	entries, _ := readTable(tables, SheetSymptoms, symptomRecord)
	for _, s := range entries {
		if _, seen := b.symptoms[s.DiseaseID]; !seen {
			b.symptomOrder = append(b.symptomOrder, s.DiseaseID)
		}
		b.symptoms[s.DiseaseID] = s
	}
}

func (b *builder) loadGroups(tables source.Tables) {
	groupNames := make(map[int]string)
	groups, _ := readTable(tables, SheetGroups, groupRecord)
	for _, g := range groups {
		groupNames[g.ID] = g.Name
	}
	members, _ := readTable(tables, SheetGroupMembers, groupMemberRecord)
	for _, m := range members {
		if _, known := b.diseaseNames[m.DiseaseID]; !known {
			continue
		}
		name, ok := groupNames[m.GroupID]
		if !ok {
			name = fmt.Sprintf("Nhóm %d", m.GroupID)
		}
		b.diseaseGroups[m.DiseaseID] = append(b.diseaseGroups[m.DiseaseID], name)
	}
}

func (b *builder) loadEntities(tables source.Tables) {
	drugs, _ := readTable(tables, SheetDrugs, drugRecord)
	for _, d := range drugs {
		b.drugs[d.ID] = d
	}
	herbs, _ := readTable(tables, SheetHerbs, herbRecord)
	for _, h := range herbs {
		b.herbs[h.ID] = h
	}
	loadFragments(tables, drugAttributes, b.drugFrags)
	loadFragments(tables, herbAttributes, b.herbFrags)
}

func loadFragments(tables source.Tables, attrs []attributeTable, into *Fragments) {
	for _, t := range attrs {
		rows, ok := tables.Table(t.sheet)
		if !ok {
			continue
		}
		for _, r := range rows {
			id, ok := t.entityID(r)
			if !ok {
				continue
			}
			if text, keep := t.format(r); keep {
				into.add(t.category, id, text)
			}
		}
	}
}

func (b *builder) diseaseName(id int) string {
	if name, ok := b.diseaseNames[id]; ok {
		return name
	}
	return fmt.Sprintf("Bệnh ID %d", id)
}

func (b *builder) drugName(id int) string {
	if d, ok := b.drugs[id]; ok {
		return d.Name
	}
	return fmt.Sprintf("Thuốc ID %d", id)
}

func (b *builder) herbName(id int) string {
	if h, ok := b.herbs[id]; ok {
		return h.Name
	}
	return fmt.Sprintf("Thảo dược ID %d", id)
}

func (b *builder) addDrugLink(l Link) {
	if _, known := b.diseaseNames[l.DiseaseID]; known {
		b.diseaseDrugs[l.DiseaseID] = append(b.diseaseDrugs[l.DiseaseID], l.EntityID)
	}
	dname := b.diseaseName(l.DiseaseID)
	drug := b.drugs[l.EntityID]
	name := b.drugName(l.EntityID)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Bệnh trong CSDL: %s (ID %d).\n", dname, l.DiseaseID)
	fmt.Fprintf(&sb, "Triệu chứng gợi ý (nếu có): %s\n\n", b.symptoms[l.DiseaseID].Symptoms)
	fmt.Fprintf(&sb, "Thuốc tây liên quan trong CSDL: %s (ID %d).\n", name, l.EntityID)
	fmt.Fprintf(&sb, "Hoạt chất chính: %s.\n", drug.Active)
	fmt.Fprintf(&sb, "Biệt dược thường gặp: %s.\n", drug.Brands)
	fmt.Fprintf(&sb, "Cảnh báo & thận trọng (tóm tắt): %s.\n\n", drug.Warnings)
	b.writeHighlights(&sb, b.drugFrags, l.EntityID)
	sb.WriteString("Tài liệu tham khảo liên quan:\n")
	writeCitation(&sb, "Tác giả/nhóm nghiên cứu", l.Citation)
	b.emit(fmt.Sprintf("%s - Thuốc tây: %s", dname, name), domain.DocDiseaseDrug, sb.String())

	b.emit("Tài liệu thuốc tây: "+l.Citation.Title, domain.DocLiterature,
		literatureText("thuốc tây", dname, l.Citation))
}

func (b *builder) addHerbLink(l Link) {
	if _, known := b.diseaseNames[l.DiseaseID]; known {
		b.diseaseHerbs[l.DiseaseID] = append(b.diseaseHerbs[l.DiseaseID], l.EntityID)
	}
	dname := b.diseaseName(l.DiseaseID)
	herb := b.herbs[l.EntityID]
	name := b.herbName(l.EntityID)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Bệnh trong CSDL: %s (ID %d).\n", dname, l.DiseaseID)
	fmt.Fprintf(&sb, "Triệu chứng gợi ý (nếu có): %s\n\n", b.symptoms[l.DiseaseID].Symptoms)
	fmt.Fprintf(&sb, "Thảo dược/bài thuốc liên quan trong CSDL: %s (ID %d).\n", name, l.EntityID)
	fmt.Fprintf(&sb, "Công thức/bài thuốc: %s.\n", herb.Formula)
	fmt.Fprintf(&sb, "Cách dùng (mô tả chung, không dùng để tự kê đơn): %s.\n", herb.Usage)
	fmt.Fprintf(&sb, "Cảnh báo & lưu ý: %s.\n", herb.Warning)
	fmt.Fprintf(&sb, "Chống chỉ định: %s.\n", herb.Contraindication)
	fmt.Fprintf(&sb, "Nguồn tham khảo gốc của bài thuốc (nếu có): %s.\n\n", herb.Reference)
	b.writeHighlights(&sb, b.herbFrags, l.EntityID)
	sb.WriteString("Tài liệu khảo sát/ tham khảo cụ thể:\n")
	writeCitation(&sb, "Tác giả/nguồn", l.Citation)
	b.emit(fmt.Sprintf("%s - Thảo dược: %s", dname, name), domain.DocDiseaseHerb, sb.String())

	b.emit("Tài liệu thảo dược: "+l.Citation.Title, domain.DocLiterature,
		literatureText("thảo dược", dname, l.Citation))
}

// writeHighlights writes the truncated pharmacology summary of a relationship document.
func (b *builder) writeHighlights(sb *strings.Builder, frags *Fragments, id int) {
	sb.WriteString("Một số thông tin dược lực/dược động (tóm lược):\n")
	sb.WriteString(frags.First(Mechanism, id, mechanismSummaryLimit) + "\n")
	sb.WriteString(frags.First(Pharmacokinetics, id, kineticsSummaryLimit) + "\n")
	sb.WriteString(frags.First(Onset, id, onsetSummaryLimit) + "\n\n")
}

func writeCitation(sb *strings.Builder, authorLabel string, c Citation) {
	fmt.Fprintf(sb, "- %s: %s\n", authorLabel, c.Author)
	fmt.Fprintf(sb, "- Tiêu đề: %s\n", c.Title)
	fmt.Fprintf(sb, "- Link: %s\n", c.URL)
}

func literatureText(subject, diseaseName string, c Citation) string {
	return fmt.Sprintf("Tài liệu tham khảo về %s trong bối cảnh bệnh %s.\nTác giả/nguồn: %s\nTiêu đề: %s\nLink: %s\n",
		subject, diseaseName, c.Author, c.Title, c.URL)
}

func (b *builder) addDiseaseSummary(id int) {
	name := b.diseaseNames[id]
	groups := joinSortedUnique(b.diseaseGroups[id], "Chưa phân nhóm")
	sym := b.symptoms[id]

	drugNames := make([]string, 0, len(b.diseaseDrugs[id]))
	for _, did := range b.diseaseDrugs[id] {
		drugNames = append(drugNames, b.drugName(did))
	}
	herbNames := make([]string, 0, len(b.diseaseHerbs[id]))
	for _, hid := range b.diseaseHerbs[id] {
		herbNames = append(herbNames, b.herbName(hid))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Bệnh: %s (ID %d).\n", name, id)
	fmt.Fprintf(&sb, "Nhóm bệnh (theo cơ quan/hệ thống) trong CSDL: %s.\n", groups)
	fmt.Fprintf(&sb, "Triệu chứng gợi ý được mô tả: %s\n", sym.Symptoms)
	fmt.Fprintf(&sb, "Link tham khảo chi tiết (nếu có): %s\n\n", sym.Link)
	fmt.Fprintf(&sb, "Các thuốc tây được liên kết trong CSDL (liệt kê tên): %s\n", joinSortedUnique(drugNames, noData))
	fmt.Fprintf(&sb, "Các thảo dược/bài thuốc được liên kết trong CSDL (liệt kê tên): %s\n", joinSortedUnique(herbNames, noData))
	b.emit("Tổng quan bệnh: "+name, domain.DocDisease, sb.String())
}

type section struct {
	heading  string
	category Category
}

var drugSections = []section{
	{"Đặc điểm dược lực học (cơ chế, tác dụng)", Mechanism},
	{"Dược động học (ADME)", Pharmacokinetics},
	{"Đặc điểm hóa học", Chemistry},
	{"Nguồn gốc & bào chế", Origin},
	{"Độc tính & nhóm thận trọng", Toxicity},
	{"Thời gian khởi phát & kéo dài tác dụng", Onset},
	{"Tính chất lý – hóa (nhiệt độ nóng chảy, pKa, logP…)", Physicochemical},
}

var herbSections = []section{
	{"Đặc điểm dược lực học (theo YHCT và mô tả hiện đại)", Mechanism},
	{"Dược động học (hấp thu, phân bố, thải trừ…)", Pharmacokinetics},
	{"Đặc điểm hóa học", Chemistry},
	{"Nguồn gốc & bộ phận dùng", Origin},
	{"Độc tính & nhóm thận trọng", Toxicity},
	{"Thời gian khởi phát & kéo dài tác dụng", Onset},
	{"Tính chất lý – hóa & cảm quan", Physicochemical},
}

func writeSections(sb *strings.Builder, sections []section, frags *Fragments, id int) {
	for i, s := range sections {
		fmt.Fprintf(sb, "* %s:\n%s\n", s.heading, frags.All(s.category, id))
		if i < len(sections)-1 {
			sb.WriteString("\n")
		}
	}
}

func (b *builder) addDrugDetail(d Drug) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Thuốc tây trong CSDL: %s (ID %d).\n", d.Name, d.ID)
	fmt.Fprintf(&sb, "Hoạt chất chính: %s.\n", d.Active)
	fmt.Fprintf(&sb, "Biệt dược phổ biến (nếu có): %s.\n", d.Brands)
	fmt.Fprintf(&sb, "Tên hoạt chất rút gọn (nếu có): %s.\n", d.ActiveShort)
	fmt.Fprintf(&sb, "Cảnh báo & thận trọng tóm tắt: %s.\n\n", d.Warnings)
	writeSections(&sb, drugSections, b.drugFrags, d.ID)
	b.emit("Thuốc tây: "+d.Name, domain.DocDrug, sb.String())
}

func (b *builder) addHerbDetail(h Herb) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Thảo dược/bài thuốc trong CSDL: %s (ID %d).\n", h.Name, h.ID)
	fmt.Fprintf(&sb, "Công thức/bài thuốc (theo mô tả): %s.\n", h.Formula)
	fmt.Fprintf(&sb, "Cách dùng (mô tả chung, KHÔNG dùng để tự kê đơn): %s.\n", h.Usage)
	fmt.Fprintf(&sb, "Cảnh báo và lưu ý: %s.\n", h.Warning)
	fmt.Fprintf(&sb, "Chống chỉ định: %s.\n", h.Contraindication)
	fmt.Fprintf(&sb, "Nguồn tham khảo bài thuốc: %s.\n\n", h.Reference)
	writeSections(&sb, herbSections, b.herbFrags, h.ID)
	b.emit("Thảo dược: "+h.Name, domain.DocHerb, sb.String())
}

// joinSortedUnique returns the distinct values sorted and comma-joined,
// or empty when there are none.
func joinSortedUnique(values []string, empty string) string {
	seen := make(map[string]struct{}, len(values))
	uniq := make([]string, 0, len(values))
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		uniq = append(uniq, v)
	}
	if len(uniq) == 0 {
		return empty
	}
	sort.Strings(uniq)
	return strings.Join(uniq, ", ")
}
