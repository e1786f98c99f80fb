package kb

import (
	"strings"

	"medrag/internal/normalize"
)

// Sheet names of the source workbook.
const (
	SheetDiseases      = "dim_benh"
	SheetSymptoms      = "trieu_chung"
	SheetGroups        = "nhombenh"
	SheetGroupMembers  = "map_nhombenh_benh"
	SheetDrugs         = "dim_thuoctay"
	SheetHerbs         = "dim_thaoduoc"
	SheetDiseaseDrugs  = "map_benh_thuoctay"
	SheetDiseaseHerbs  = "map_benh_thaoduoc_survey"
	SheetDrugMechanism = "thuoctay_cochetacdong"
	SheetDrugClinical  = "thuoctay_duocluchoc"
	SheetDrugOnset     = "thuoctay_thoigiantacdung"
	SheetDrugKinetics  = "thuoctay_duocdonghoc"
	SheetDrugChemistry = "thuoctay_dacdiemhoahoc"
	SheetDrugOrigin    = "thuoctay_dacdiemnguongoc"
	SheetDrugToxicity  = "thuoctay_doctinh"
	SheetDrugPhysChem  = "thuoctay_tinhchatlyhoa"
	SheetHerbMechanism = "thaoduoc_cochetacdong"
	SheetHerbClinical  = "thaoduoc_duocluchoc"
	SheetHerbOnset     = "thaoduoc_thoigiantacdung"
	SheetHerbKinetics  = "thaoduoc_duocdonghoc"
	SheetHerbChemistry = "thaoduoc_dacdiemhoahoc"
	SheetHerbOrigin    = "thaoduoc_dacdiemnguongoc"
	SheetHerbToxicity  = "thaoduoc_doctinh"
	SheetHerbPhysChem  = "thaoduoc_tinhchatlyhoa"
)

// Disease is a row of the disease table, the root of every join.
type Disease struct {
	ID   int
	Name string
}

// SymptomInfo is the recorded symptom description of one disease.
type SymptomInfo struct {
	DiseaseID int
	Symptoms  string
	Link      string
}

// Group is a disease group, usually an organ system.
type Group struct {
	ID   int
	Name string
}

// GroupMember links a disease to a group.
type GroupMember struct {
	GroupID   int
	DiseaseID int
}

// Drug is the core record of a pharmaceutical drug.
type Drug struct {
	ID          int
	Name        string
	Active      string
	Brands      string
	ActiveShort string
	Warnings    string
}

// Herb is the core record of an herbal remedy or formula.
type Herb struct {
	ID               int
	Name             string
	Formula          string
	Usage            string
	Warning          string
	Contraindication string
	Reference        string
}

// Citation is the literature reference carried by a relationship row.
type Citation struct {
	Author string
	Title  string
	URL    string
}

// Link relates a disease to a drug or an herb.
type Link struct {
	DiseaseID int
	EntityID  int
	Citation  Citation
}

func col(r normalize.Row, i int) string { return normalize.String(r.At(i)) }

func diseaseRecord(r normalize.Row) (Disease, bool) {
	id, ok := normalize.Int(r.At(0))
	return Disease{ID: id, Name: col(r, 1)}, ok
}

func symptomRecord(r normalize.Row) (SymptomInfo, bool) {
	id, ok := normalize.Int(r.At(0))
	return SymptomInfo{DiseaseID: id, Symptoms: col(r, 1), Link: col(r, 2)}, ok
}

func groupRecord(r normalize.Row) (Group, bool) {
	id, ok := normalize.Int(r.At(0))
	return Group{ID: id, Name: col(r, 1)}, ok
}

func groupMemberRecord(r normalize.Row) (GroupMember, bool) {
	gid, okG := normalize.Int(r.At(0))
	did, okD := normalize.Int(r.At(1))
	return GroupMember{GroupID: gid, DiseaseID: did}, okG && okD
}

func drugRecord(r normalize.Row) (Drug, bool) {
	id, ok := normalize.Int(r.At(0))
	return Drug{
		ID:          id,
		Name:        col(r, 1),
		Active:      col(r, 2),
		Brands:      col(r, 3),
		ActiveShort: col(r, 4),
		Warnings:    col(r, 5),
	}, ok
}

// herbRecord never reads column 4, which holds dosing.
func herbRecord(r normalize.Row) (Herb, bool) {
	id, ok := normalize.Int(r.At(0))
	return Herb{
		ID:               id,
		Name:             col(r, 1),
		Formula:          col(r, 2),
		Usage:            col(r, 3),
		Warning:          strings.TrimSpace(col(r, 5) + " " + col(r, 8)),
		Contraindication: col(r, 6),
		Reference:        col(r, 7),
	}, ok
}

func drugLinkRecord(r normalize.Row) (Link, bool) {
	did, okD := normalize.Int(r.At(0))
	eid, okE := normalize.Int(r.At(1))
	return Link{
		DiseaseID: did,
		EntityID:  eid,
		Citation:  Citation{Author: col(r, 2), Title: col(r, 3), URL: col(r, 4)},
	}, okD && okE
}

// herbLinkRecord skips column 2 of the survey sheet.
func herbLinkRecord(r normalize.Row) (Link, bool) {
	did, okD := normalize.Int(r.At(0))
	eid, okE := normalize.Int(r.At(1))
	return Link{
		DiseaseID: did,
		EntityID:  eid,
		Citation:  Citation{Author: col(r, 3), Title: col(r, 4), URL: col(r, 5)},
	}, okD && okE
}
