package health

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RenderDashboardHTML returns the HTML status page served at GET /.
func RenderDashboardHTML(health CollectResult) string {
	payload := map[string]interface{}{
		"status":       health.Status,
		"runtime":      health.Runtime,
		"traffic":      health.Traffic,
		"dependencies": health.Dependencies,
	}
	b, _ := json.Marshal(payload)
	jsonStr := string(b)
	// Escape for embedding in a JS template literal
	jsonStr = strings.ReplaceAll(jsonStr, "\\", "\\\\")
	jsonStr = strings.ReplaceAll(jsonStr, "`", "\\`")
	jsonStr = strings.ReplaceAll(jsonStr, "$", "\\$")

	headline := "كل الأنظمة تعمل"
	if health.Status != "ok" {
		headline = "هناك مشكلة في الخدمة"
	}

	depRows := ""
	for _, name := range []string{"database", "redis", "supabase", "whatsapp"} {
		dep, ok := health.Dependencies[name]
		if !ok {
			continue
		}
		cls := "err"
		if dep.Status == "connected" || dep.Status == "reachable" {
			cls = "ok"
		}
		ping := "-"
		if dep.PingMs != nil {
			ping = fmt.Sprintf("%v ms", dep.PingMs)
		}
		depRows += fmt.Sprintf(
			`<div class="row"><span>%s</span><span class="pill %s">%s · %s</span></div>`,
			name, cls, dep.Status, ping)
	}

	return `<!DOCTYPE html>
<html lang="ar" dir="rtl">
<head>
  <meta charset="UTF-8">
  <title>حلواتي · حالة الخدمة</title>
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <style>
    :root { --rose: #E8B4B8; --dark: #4A2C2A; --cream: #FFF8F0; --muted: #8a7068; }
    * { box-sizing: border-box; }
    body { background: var(--cream); color: var(--dark); font-family: 'Segoe UI', Tahoma, sans-serif; margin: 0; min-height: 100vh; display: flex; align-items: center; justify-content: center; }
    .container { width: 100%; max-width: 720px; padding: 24px; }
    h1 { font-size: clamp(28px, 5vw, 44px); margin: 0 0 8px; text-align: center; }
    .subtext { text-align: center; color: var(--muted); margin-bottom: 28px; }
    .card { background: #fff; border-radius: 20px; padding: 28px; box-shadow: 0 18px 50px -24px rgba(74, 44, 42, 0.35); }
    .row { display: flex; justify-content: space-between; align-items: center; padding: 10px 0; border-bottom: 1px solid rgba(0,0,0,0.05); font-size: 15px; }
    .row:last-child { border-bottom: none; }
    .pill { padding: 4px 12px; border-radius: 10px; font-size: 12px; font-weight: 700; }
    .ok { background: rgba(46, 125, 50, 0.1); color: #2e7d32; }
    .err { background: rgba(198, 40, 40, 0.1); color: #c62828; }
    .stats { display:flex; gap: 16px; margin-top: 20px; }
    .stat { flex: 1; text-align: center; background: var(--cream); border-radius: 14px; padding: 14px; }
    .stat b { display: block; font-size: 22px; }
    footer { text-align: center; margin-top: 20px; color: var(--muted); font-size: 12px; }
  </style>
</head>
<body>
  <div class="container">
    <h1>` + headline + `</h1>
    <p class="subtext">حلواتي · سوق الحلويات المنزلية الجزائرية</p>
    <div class="card">
      ` + depRows + `
      <div class="stats">
        <div class="stat"><b id="total">0</b>طلبات</div>
        <div class="stat"><b id="rate">100%</b>نسبة النجاح</div>
        <div class="stat"><b id="avg">0</b>متوسط الاستجابة (ms)</div>
      </div>
    </div>
    <footer>helwati-api · <span id="uptime"></span></footer>
  </div>
  <script>
    const health = JSON.parse(` + "`" + jsonStr + "`" + `);
    document.getElementById('total').textContent = health.traffic.totalRequests;
    document.getElementById('rate').textContent = health.traffic.successRate + '%';
    document.getElementById('avg').textContent = health.traffic.avgResponseTime;
    const up = health.runtime.uptimeSeconds;
    document.getElementById('uptime').textContent =
      Math.floor(up / 3600) + 'h ' + Math.floor((up % 3600) / 60) + 'm';
    setTimeout(() => location.reload(), 10000);
  </script>
</body>
</html>`
}
