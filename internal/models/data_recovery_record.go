package models

import "time"

// DataRecoveryRecord 数据恢复每日记录，对应 drarwo 表
type DataRecoveryRecord struct {
	ID                     int64     `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	UserID                 int64     `json:"user_id" gorm:"column:user_id;not null"`
	User                   string    `json:"user" gorm:"column:user;size:50;not null"`
	WorkDate               Date      `json:"work_date" gorm:"column:work_date;not null"`
	DiscoveredAMalfunction string    `json:"Discovered_a_malfunction" gorm:"column:Discovered_a_malfunction"`
	ReasonForMalfunction   string    `json:"Reason_for_malfunction" gorm:"column:Reason_for_malfunction"`
	RepairMethod           string    `json:"Repair_method" gorm:"column:Repair_method"`
	RepairResults          string    `json:"Repair_results" gorm:"column:Repair_results"`
	CustomerSatisfaction   string    `json:"Customer_satisfaction" gorm:"column:Customer_satisfaction"`
	CreatedAt              time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt              time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (DataRecoveryRecord) TableName() string  { return "drarwo" }
func (DataRecoveryRecord) DateColumn() string { return "work_date" }

func (r DataRecoveryRecord) Assignments() map[string]interface{} {
	return map[string]interface{}{
		"user_id":                  r.UserID,
		"Discovered_a_malfunction": r.DiscoveredAMalfunction,
		"Reason_for_malfunction":   r.ReasonForMalfunction,
		"Repair_method":            r.RepairMethod,
		"Repair_results":           r.RepairResults,
		"Customer_satisfaction":    r.CustomerSatisfaction,
	}
}

func (r DataRecoveryRecord) RecordID() int64 { return r.ID }
func (r DataRecoveryRecord) Owner() string   { return r.User }
func (r DataRecoveryRecord) Day() Date       { return r.WorkDate }

func (r *DataRecoveryRecord) SetKey(user string, day Date) { r.User, r.WorkDate = user, day }
func (r *DataRecoveryRecord) SetUserID(id int64)           { r.UserID = id }
func (r *DataRecoveryRecord) ClearID()                     { r.ID = 0 }
