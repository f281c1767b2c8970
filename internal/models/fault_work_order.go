package models

import "time"

// FaultWorkOrder 故障工单每日记录，对应 fcbmwo_date 表。
// User 为工程师工位 (engineer1/engineer2/engineer3)，每个工位每天一条。
type FaultWorkOrder struct {
	ID                      int64     `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	UserID                  int64     `json:"user_id" gorm:"column:user_id;not null"`
	User                    string    `json:"user" gorm:"column:user;size:50;not null"`
	WorkDate                Date      `json:"work_date" gorm:"column:work_date;not null"`
	DiscoveredAMalfunction  string    `json:"Discovered_a_malfunction" gorm:"column:Discovered_a_malfunction"`
	DiscoveredAMalfunction2 string    `json:"Discovered_a_malfunction2" gorm:"column:Discovered_a_malfunction2"`
	DiscoveredAMalfunction3 string    `json:"Discovered_a_malfunction3" gorm:"column:Discovered_a_malfunction3"`
	TestResults             string    `json:"Test_results" gorm:"column:Test_results"`
	TestResults2            string    `json:"Test_results2" gorm:"column:Test_results2"`
	TestResults3            string    `json:"Test_results3" gorm:"column:Test_results3"`
	LocateFaultyComponents  string    `json:"Locate_faulty_components" gorm:"column:Locate_faulty_components"`
	LocateFaultyComponents2 string    `json:"Locate_faulty_components2" gorm:"column:Locate_faulty_components2"`
	LocateFaultyComponents3 string    `json:"Locate_faulty_components3" gorm:"column:Locate_faulty_components3"`
	RepairResults           string    `json:"Repair_results" gorm:"column:Repair_results"`
	RepairResults2          string    `json:"Repair_results2" gorm:"column:Repair_results2"`
	RepairResults3          string    `json:"Repair_results3" gorm:"column:Repair_results3"`
	OptimizationEffect      string    `json:"Optimization_effect" gorm:"column:Optimization_effect"`
	CreatedAt               time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt               time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (FaultWorkOrder) TableName() string  { return "fcbmwo_date" }
func (FaultWorkOrder) DateColumn() string { return "work_date" }

func (r FaultWorkOrder) Assignments() map[string]interface{} {
	return map[string]interface{}{
		"user_id":                   r.UserID,
		"Discovered_a_malfunction":  r.DiscoveredAMalfunction,
		"Discovered_a_malfunction2": r.DiscoveredAMalfunction2,
		"Discovered_a_malfunction3": r.DiscoveredAMalfunction3,
		"Test_results":              r.TestResults,
		"Test_results2":             r.TestResults2,
		"Test_results3":             r.TestResults3,
		"Locate_faulty_components":  r.LocateFaultyComponents,
		"Locate_faulty_components2": r.LocateFaultyComponents2,
		"Locate_faulty_components3": r.LocateFaultyComponents3,
		"Repair_results":            r.RepairResults,
		"Repair_results2":           r.RepairResults2,
		"Repair_results3":           r.RepairResults3,
		"Optimization_effect":       r.OptimizationEffect,
	}
}

func (r FaultWorkOrder) RecordID() int64 { return r.ID }
func (r FaultWorkOrder) Owner() string   { return r.User }
func (r FaultWorkOrder) Day() Date       { return r.WorkDate }

func (r *FaultWorkOrder) SetKey(user string, day Date) { r.User, r.WorkDate = user, day }
func (r *FaultWorkOrder) SetUserID(id int64)           { r.UserID = id }
func (r *FaultWorkOrder) ClearID()                     { r.ID = 0 }
