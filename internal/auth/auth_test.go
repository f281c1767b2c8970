package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/repair_workorder/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func intPtr(i int) *int { return &i }

func TestRoleFor(t *testing.T) {
	cases := []struct {
		permissions int
		slot        *int
		want        string
	}{
		{1, intPtr(1), RoleEngineer1},
		{1, intPtr(2), RoleEngineer2},
		{1, intPtr(3), RoleEngineer3},
		{1, nil, RoleEngineer1},
		{1, intPtr(9), RoleEngineer1},
		{2, nil, RoleDataRecoveryEngineer},
		{3, nil, RoleReferee},
		{4, intPtr(2), RoleAdmin},
		{7, nil, RoleEngineer1},
	}
	for _, tc := range cases {
		if got := RoleFor(tc.permissions, tc.slot); got != tc.want {
			t.Errorf("RoleFor(%d, %v) = %s, want %s", tc.permissions, tc.slot, got, tc.want)
		}
	}
}

func TestCanWriteRecord(t *testing.T) {
	eng1 := Session{Username: "zhang1", Role: RoleEngineer1, Permissions: 1}
	dre := Session{Username: "li", Role: RoleDataRecoveryEngineer, Permissions: 2}
	referee := Session{Username: "wang", Role: RoleReferee, Permissions: 3}
	admin := Session{Username: "admin", Role: RoleAdmin, Permissions: 4}

	cases := []struct {
		name    string
		s       Session
		res     Resource
		owner   string
		allowed bool
	}{
		{"工程师写自己的故障工单", eng1, ResourceFaultWorkOrder, RoleEngineer1, true},
		{"工程师写他人的故障工单", eng1, ResourceFaultWorkOrder, RoleEngineer2, false},
		{"工程师写数据恢复", eng1, ResourceDataRecovery, RoleEngineer1, false},
		{"工程师写自己的7S", eng1, ResourceSevenS, RoleEngineer1, true},
		{"工程师写他人的7S", eng1, ResourceSevenS, RoleEngineer3, false},
		{"数据恢复工程师写故障工单", dre, ResourceFaultWorkOrder, RoleEngineer1, false},
		{"数据恢复工程师写数据恢复", dre, ResourceDataRecovery, "li", true},
		{"数据恢复工程师写7S", dre, ResourceSevenS, RoleEngineer2, true},
		{"裁判写故障工单", referee, ResourceFaultWorkOrder, RoleEngineer3, true},
		{"管理员写数据恢复", admin, ResourceDataRecovery, "li", true},
		{"无角色", Session{}, ResourceSevenS, "", false},
	}
	for _, tc := range cases {
		if got := CanWriteRecord(tc.s, tc.res, tc.owner); got != tc.allowed {
			t.Errorf("%s: CanWriteRecord = %v, want %v", tc.name, got, tc.allowed)
		}
	}
}

func TestSessionOwnerKey(t *testing.T) {
	if k := (Session{Username: "zhang2", Role: RoleEngineer2}).OwnerKey(); k != RoleEngineer2 {
		t.Errorf("工程师 OwnerKey = %s", k)
	}
	if k := (Session{Username: "li", Role: RoleDataRecoveryEngineer}).OwnerKey(); k != "li" {
		t.Errorf("数据恢复工程师 OwnerKey = %s", k)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour, "test")
	s := Session{UserID: 7, Username: "zhang1", Role: RoleEngineer1, Permissions: 1}

	token, exp, err := issuer.Issue(s)
	if err != nil {
		t.Fatalf("Issue 返回错误: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatalf("过期时间应在未来: %v", exp)
	}

	claims, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("Parse 返回错误: %v", err)
	}
	if got := SessionFromClaims(claims); got != s {
		t.Errorf("会话不一致: %+v, want %+v", got, s)
	}

	other := NewTokenIssuer("another", time.Hour, "test")
	if _, err := other.Parse(token); err == nil {
		t.Error("不同密钥签发的 Token 应校验失败")
	}

	expired := NewTokenIssuer("secret", time.Hour, "test")
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, err := expired.Issue(s)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := issuer.Parse(old); err == nil {
		t.Error("过期 Token 应校验失败")
	}
}

func TestMemoryDenylist(t *testing.T) {
	d := NewMemoryDenylist()
	ctx := context.Background()

	_ = d.Add(ctx, "live", time.Now().Add(time.Hour))
	_ = d.Add(ctx, "stale", time.Now().Add(-time.Minute))

	if ok, _ := d.Contains(ctx, "live"); !ok {
		t.Error("未过期的 JTI 应在拒绝列表中")
	}
	if ok, _ := d.Contains(ctx, "stale"); ok {
		t.Error("已过期的 JTI 不应再被拒绝")
	}
	if ok, _ := d.Contains(ctx, "unknown"); ok {
		t.Error("未知 JTI 不应被拒绝")
	}
}

// accountMap 以 ID 索引的内存账户
type accountMap map[int64]*models.User

func (m accountMap) FindByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := m[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func defaultAccounts() accountMap {
	return accountMap{
		1: {ID: 1, Username: "e1", Permissions: models.PermissionEngineer, Status: models.UserStatusActive},
		2: {ID: 2, Username: "admin", Permissions: models.PermissionAdmin, Status: models.UserStatusActive},
		3: {ID: 3, Username: "wang", Permissions: models.PermissionReferee, Status: models.UserStatusActive},
	}
}

func newProtectedRouter(issuer *TokenIssuer, denylist Denylist, accounts AccountStore, roles ...string) *gin.Engine {
	r := gin.New()
	handlers := []gin.HandlerFunc{JWTMiddleware(issuer, denylist, accounts)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRoles(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		s, _ := SessionFromContext(c)
		c.JSON(http.StatusOK, s)
	})
	r.GET("/me", handlers...)
	return r
}

func doGet(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTMiddleware(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour, "test")
	denylist := NewMemoryDenylist()
	r := newProtectedRouter(issuer, denylist, defaultAccounts())

	if w := doGet(r, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("缺少 Token 应返回 401, got %d", w.Code)
	}
	if w := doGet(r, "not-a-jwt"); w.Code != http.StatusUnauthorized {
		t.Errorf("格式错误的 Token 应返回 401, got %d", w.Code)
	}

	s := Session{UserID: 3, Username: "wang", Role: RoleReferee, Permissions: 3}
	token, exp, _ := issuer.Issue(s)

	w := doGet(r, token)
	if w.Code != http.StatusOK {
		t.Fatalf("有效 Token 应返回 200, got %d: %s", w.Code, w.Body.String())
	}
	var got Session
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got != s {
		t.Errorf("上下文中的会话 = %+v, want %+v", got, s)
	}

	claims, _ := issuer.Parse(token)
	_ = denylist.Add(context.Background(), claims.ID, exp)
	if w := doGet(r, token); w.Code != http.StatusUnauthorized {
		t.Errorf("登出后的 Token 应返回 401, got %d", w.Code)
	}
}

func TestRequireRoles(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour, "test")
	r := newProtectedRouter(issuer, NewMemoryDenylist(), defaultAccounts(), RoleAdmin)

	engineer, _, _ := issuer.Issue(Session{UserID: 1, Username: "e1", Role: RoleEngineer1, Permissions: 1})
	if w := doGet(r, engineer); w.Code != http.StatusForbidden {
		t.Errorf("非管理员应返回 403, got %d", w.Code)
	}
	admin, _, _ := issuer.Issue(Session{UserID: 2, Username: "admin", Role: RoleAdmin, Permissions: 4})
	if w := doGet(r, admin); w.Code != http.StatusOK {
		t.Errorf("管理员应返回 200, got %d", w.Code)
	}
}

func TestJWTMiddlewareReloadsAccount(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour, "test")
	accounts := defaultAccounts()
	r := newProtectedRouter(issuer, NewMemoryDenylist(), accounts, RoleAdmin)

	token, _, _ := issuer.Issue(Session{UserID: 2, Username: "admin", Role: RoleAdmin, Permissions: 4})
	if w := doGet(r, token); w.Code != http.StatusOK {
		t.Fatalf("启用的管理员应返回 200, got %d", w.Code)
	}

	// 降级后角色取自账户，不取自 Token
	accounts[2].Permissions = models.PermissionEngineer
	if w := doGet(r, token); w.Code != http.StatusForbidden {
		t.Errorf("降级后应返回 403, got %d", w.Code)
	}

	accounts[2].Permissions = models.PermissionAdmin
	accounts[2].Status = models.UserStatusDisabled
	if w := doGet(r, token); w.Code != http.StatusUnauthorized {
		t.Errorf("停用后应返回 401, got %d", w.Code)
	}

	accounts[2].Status = models.UserStatusActive
	accounts[2].TokenVersion = 1
	if w := doGet(r, token); w.Code != http.StatusUnauthorized {
		t.Errorf("Token 版本落后应返回 401, got %d", w.Code)
	}
	fresh, _, _ := issuer.Issue(Session{UserID: 2, Username: "admin", Role: RoleAdmin, Permissions: 4, TokenVersion: 1})
	if w := doGet(r, fresh); w.Code != http.StatusOK {
		t.Errorf("新版本 Token 应返回 200, got %d", w.Code)
	}

	delete(accounts, 2)
	if w := doGet(r, fresh); w.Code != http.StatusUnauthorized {
		t.Errorf("删除后应返回 401, got %d", w.Code)
	}
}
