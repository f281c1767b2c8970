package services

import (
	"errors"

	"github.com/repair_workorder/internal/repositories"
)

// ErrRecordNotFound 记录不存在，与仓库层共用同一个哨兵错误
var ErrRecordNotFound = repositories.ErrRecordNotFound

var (
	// ErrForbidden 当前角色无权写入该记录
	ErrForbidden = errors.New("无权限执行此操作")
	// ErrOwnerMismatch 提交的 current_user 与记录所属用户不一致
	ErrOwnerMismatch = errors.New("无权限修改其他用户的评估记录")
	ErrUserRequired  = errors.New("用户字段不能为空")
	ErrInvalidDate   = errors.New("日期格式无效，应为 YYYY-MM-DD")
)

// 登录相关
var (
	ErrCredentialsRequired    = errors.New("用户名和密码不能为空")
	ErrUserNotFoundOrDisabled = errors.New("用户名不存在或账户已被禁用")
	ErrWrongPassword          = errors.New("密码错误")
)

// 用户管理
var (
	ErrUsernameRequired   = errors.New("用户名不能为空")
	ErrPasswordRequired   = errors.New("密码不能为空")
	ErrPasswordTooShort   = errors.New("密码长度不能少于6位")
	ErrInvalidPermissions = errors.New("权限等级必须在 1 到 4 之间")
	ErrInvalidStatus      = errors.New("账户状态必须为 0 或 1")
	ErrInvalidSlot        = errors.New("工程师工位必须在 1 到 3 之间")
	ErrUsernameExists     = repositories.ErrUsernameExists
	ErrCannotDeleteSelf   = errors.New("不能删除当前登录的账户")
)

// 工单
var (
	ErrWorkOrderFieldsRequired = errors.New("工号和创建人不能为空")
	ErrInvalidWorkOrderStatus  = errors.New("工单状态必须为 draft、submitted 或 completed")
	ErrDetailEngineerRequired  = errors.New("工单明细的工程师不能为空")
)

// 管理员批量操作
var (
	ErrBulkOperationInProgress = errors.New("另一个批量数据操作正在进行，请稍后再试")
	ErrInvalidImportFile       = errors.New("导入文件格式无效")
	ErrUnsupportedExportFormat = errors.New("不支持的导出格式")
	ErrAlreadyInitialized      = errors.New("数据库已初始化")
)
