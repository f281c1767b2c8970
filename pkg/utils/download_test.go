package utils

import "testing"

func TestContentDisposition(t *testing.T) {
	got := ContentDisposition("workorder_system_data_2024-01-02_10-00-00.json", "工单系统数据_2024-01-02_10-00-00.json")
	want := `attachment; filename="workorder_system_data_2024-01-02_10-00-00.json"; ` +
		`filename*=UTF-8''%E5%B7%A5%E5%8D%95%E7%B3%BB%E7%BB%9F%E6%95%B0%E6%8D%AE_2024-01-02_10-00-00.json`
	if got != want {
		t.Errorf("ContentDisposition =\n%s\nwant\n%s", got, want)
	}

	if got := ContentDisposition(`a"b.json`, "x y.json"); got != `attachment; filename="ab.json"; filename*=UTF-8''x%20y.json` {
		t.Errorf("特殊字符处理错误: %s", got)
	}
}
