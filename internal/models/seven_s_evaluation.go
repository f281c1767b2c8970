package models

import "time"

// SevenSEvaluation 7S 管理评估，对应 7S_Management_Evaluation 表。
// TotalScore 由数据库生成列计算，应用只读。
type SevenSEvaluation struct {
	ID             int64     `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	UserID         int64     `json:"user_id" gorm:"column:user_id;not null"`
	User           string    `json:"user" gorm:"column:user;size:50;not null"`
	EvaluationDate Date      `json:"evaluation_date" gorm:"column:evaluation_date;not null"`
	Arrange        Flag      `json:"arrange" gorm:"column:arrange;not null"`         // 整理
	Reorganize     Flag      `json:"reorganize" gorm:"column:reorganize;not null"`   // 整顿
	Clean          Flag      `json:"clean" gorm:"column:clean;not null"`             // 清扫
	Cleanliness    Flag      `json:"cleanliness" gorm:"column:cleanliness;not null"` // 清洁
	Quality        Flag      `json:"quality" gorm:"column:quality;not null"`         // 素养
	Secure         Flag      `json:"secure" gorm:"column:secure;not null"`           // 安全
	Save           Flag      `json:"save" gorm:"column:save;not null"`               // 节约
	TotalScore     int       `json:"total_score" gorm:"column:total_score;->"`
	CreatedAt      time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (SevenSEvaluation) TableName() string  { return "7S_Management_Evaluation" }
func (SevenSEvaluation) DateColumn() string { return "evaluation_date" }

func (r SevenSEvaluation) Assignments() map[string]interface{} {
	return map[string]interface{}{
		"user_id":     r.UserID,
		"arrange":     r.Arrange,
		"reorganize":  r.Reorganize,
		"clean":       r.Clean,
		"cleanliness": r.Cleanliness,
		"quality":     r.Quality,
		"secure":      r.Secure,
		"save":        r.Save,
	}
}

// Score 按勾选项计算的分数，与生成列一致
func (r SevenSEvaluation) Score() int {
	score := 0
	for _, f := range []Flag{r.Arrange, r.Reorganize, r.Clean, r.Cleanliness, r.Quality, r.Secure, r.Save} {
		if f.Bool() {
			score++
		}
	}
	return score
}

func (r SevenSEvaluation) RecordID() int64 { return r.ID }
func (r SevenSEvaluation) Owner() string   { return r.User }
func (r SevenSEvaluation) Day() Date       { return r.EvaluationDate }

func (r *SevenSEvaluation) SetKey(user string, day Date) { r.User, r.EvaluationDate = user, day }
func (r *SevenSEvaluation) SetUserID(id int64)           { r.UserID = id }
func (r *SevenSEvaluation) ClearID()                     { r.ID = 0 }
