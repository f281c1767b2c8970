package auth

// Resource 受权限控制的每日记录类型
type Resource int

const (
	ResourceFaultWorkOrder Resource = iota
	ResourceSevenS
	ResourceDataRecovery
)

func (r Resource) String() string {
	switch r {
	case ResourceFaultWorkOrder:
		return "故障工单"
	case ResourceSevenS:
		return "7S评估"
	case ResourceDataRecovery:
		return "数据恢复记录"
	default:
		return "记录"
	}
}

// CanWriteRecord 判断调用方能否写入 user 为 owner 的记录。
//
//	故障工单: 工程师只能写自己的工位；裁判和管理员可写任意工位
//	7S 评估:  工程师只能写自己的工位；数据恢复工程师、裁判、管理员可写任意记录
//	数据恢复: 数据恢复工程师、裁判、管理员可写任意记录
func CanWriteRecord(s Session, res Resource, owner string) bool {
	switch s.Role {
	case RoleAdmin, RoleReferee:
		return true
	case RoleDataRecoveryEngineer:
		return res == ResourceSevenS || res == ResourceDataRecovery
	}
	if IsEngineerRole(s.Role) {
		return (res == ResourceFaultWorkOrder || res == ResourceSevenS) && owner == s.Role
	}
	return false
}

// CanDeleteWorkOrder 删除工单需要裁判或管理员
func CanDeleteWorkOrder(s Session) bool {
	return s.Role == RoleAdmin || s.Role == RoleReferee
}
