package auth

import (
	"fmt"
	"strings"

	"github.com/repair_workorder/internal/models"
)

// 角色
const (
	RoleEngineer1            = "engineer1"
	RoleEngineer2            = "engineer2"
	RoleEngineer3            = "engineer3"
	RoleDataRecoveryEngineer = "data_recovery_engineer"
	RoleReferee              = "referee"
	RoleAdmin                = "admin"
)

// EngineerSlots 故障工单与 7S 评估中的工位
var EngineerSlots = []string{RoleEngineer1, RoleEngineer2, RoleEngineer3}

// RoleFor 把权限等级映射为角色。
// 等级 1 按账户的工位分配 engineerN，未分配时为 engineer1；未知等级按等级 1 处理。
func RoleFor(permissions int, engineerSlot *int) string {
	switch permissions {
	case models.PermissionDataRecovery:
		return RoleDataRecoveryEngineer
	case models.PermissionReferee:
		return RoleReferee
	case models.PermissionAdmin:
		return RoleAdmin
	}
	if engineerSlot != nil && *engineerSlot >= 1 && *engineerSlot <= len(EngineerSlots) {
		return EngineerSlots[*engineerSlot-1]
	}
	return RoleEngineer1
}

// RoleLabel 角色的中文名称
func RoleLabel(permissions int) string {
	switch permissions {
	case models.PermissionDataRecovery:
		return "数据恢复工程师"
	case models.PermissionReferee:
		return "裁判"
	case models.PermissionAdmin:
		return "管理员"
	default:
		return "工程师"
	}
}

// IsEngineerRole 判断是否为 engineerN 角色
func IsEngineerRole(role string) bool {
	return strings.HasPrefix(role, "engineer") && EngineerSlotIndex(role) > 0
}

// EngineerSlotIndex 返回 engineerN 中的 N，非工位返回 0
func EngineerSlotIndex(role string) int {
	for i, slot := range EngineerSlots {
		if slot == role {
			return i + 1
		}
	}
	return 0
}

// ValidateEngineerSlot 校验工位编号
func ValidateEngineerSlot(slot int) error {
	if slot < 1 || slot > len(EngineerSlots) {
		return fmt.Errorf("工位编号必须在 1 到 %d 之间", len(EngineerSlots))
	}
	return nil
}
