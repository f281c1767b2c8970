package models

// 每日记录保存结果
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
)

// DailyRecord 按 (user, 日期) 唯一的每日记录：
// 故障工单 fcbmwo_date、7S 评估、数据恢复记录 drarwo。
type DailyRecord interface {
	TableName() string
	// DateColumn 自然键中的日期列
	DateColumn() string
	// Assignments 保存时覆盖的内容列及其值，不含键列和时间戳
	Assignments() map[string]interface{}
	RecordID() int64
	Owner() string
	Day() Date
	SetKey(user string, day Date)
	SetUserID(id int64)
	ClearID()
}

// ContentColumns 返回内容列名，顺序固定
func ContentColumns(r DailyRecord) []string {
	return sortedKeys(r.Assignments())
}
