package server

import "net/http"

// handleDashboard serves the live dashboard: a single self-contained
// HTML page that polls /centers and /history every 2 seconds.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "only GET is allowed")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(dashboardHTML))
}

const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <title>Community Clinic Load Manager</title>
  <style>
    body {
      font-family: system-ui, -apple-system, "Segoe UI", sans-serif;
      background: #0f172a;
      color: #e5e7eb;
      margin: 0;
    }
    header {
      padding: 16px 24px;
      background: #020617;
      border-bottom: 1px solid #1e293b;
    }
    h1 { font-size: 20px; margin: 0; }
    .subtitle { font-size: 12px; color: #9ca3af; margin-top: 4px; }
    main {
      padding: 16px 24px 32px;
      display: grid;
      grid-template-columns: 2fr 1.2fr;
      gap: 24px;
    }
    section {
      background: #020617;
      border-radius: 12px;
      padding: 16px 18px;
      border: 1px solid #1e293b;
    }
    section h2 { margin: 0 0 12px; font-size: 16px; }
    table { width: 100%; border-collapse: collapse; font-size: 14px; }
    th, td { padding: 6px 8px; text-align: left; }
    th { border-bottom: 1px solid #1f2937; color: #9ca3af; }
    .bar {
      background: #020617;
      border-radius: 999px;
      height: 9px;
      overflow: hidden;
      border: 1px solid #111827;
    }
    .bar > div {
      height: 100%;
      background: linear-gradient(90deg, #22c55e, #eab308, #ef4444);
      transition: width 0.4s ease;
    }
    .up, .down {
      display: inline-block;
      padding: 2px 8px;
      border-radius: 999px;
      font-size: 11px;
    }
    .up { background: #14532d; color: #bbf7d0; }
    .down { background: #7f1d1d; color: #fecaca; }
    .history {
      list-style: none;
      padding: 0;
      margin: 0;
      max-height: 380px;
      overflow-y: auto;
      font-size: 13px;
    }
    .history li { border-bottom: 1px solid #111827; padding: 6px 2px; }
    .reason {
      display: inline-block;
      padding: 1px 6px;
      border-radius: 999px;
      background: #1d4ed8;
      color: #dbeafe;
      font-size: 10px;
      margin-left: 6px;
    }
    .ts { color: #6b7280; font-size: 11px; }
  </style>
</head>
<body>
  <header>
    <h1>Community Clinic Load Manager</h1>
    <div class="subtitle">Live center load and routing decisions</div>
  </header>
  <main>
    <section>
      <h2>Centers &amp; Load</h2>
      <table>
        <thead>
          <tr><th>ID</th><th>Center</th><th>Capacity</th><th>Load</th><th>Utilization</th><th>Status</th></tr>
        </thead>
        <tbody id="centers"><tr><td colspan="6">Loading…</td></tr></tbody>
      </table>
    </section>
    <section>
      <h2>Routing History</h2>
      <ul id="history" class="history"><li>No routing events yet.</li></ul>
    </section>
  </main>
  <script>
    async function refreshCenters() {
      const res = await fetch("/centers");
      const centers = await res.json();
      const tbody = document.getElementById("centers");
      if (!centers.length) {
        tbody.innerHTML = "<tr><td colspan='6'>No centers configured yet.</td></tr>";
        return;
      }
      tbody.innerHTML = centers.map(c => {
        const util = c.capacity > 0 ? Math.min(100, (c.current_load / (c.capacity * 10)) * 100) : 0;
        const status = c.is_up ? "<span class='up'>UP</span>" : "<span class='down'>DOWN</span>";
        return "<tr><td>" + c.id + "</td><td>" + c.name + "</td><td>" + c.capacity +
          "</td><td>" + c.current_load.toFixed(1) +
          "</td><td><div class='bar'><div style='width:" + util + "%'></div></div></td><td>" +
          status + "</td></tr>";
      }).join("");
    }

    async function refreshHistory() {
      const res = await fetch("/history");
      const events = await res.json();
      const list = document.getElementById("history");
      if (!events.length) {
        list.innerHTML = "<li>No routing events yet.</li>";
        return;
      }
      list.innerHTML = events.slice().reverse().map(e => {
        const when = new Date(e.timestamp * 1000).toLocaleTimeString();
        return "<li>Request <strong>#" + e.request_id + "</strong> → Center <strong>#" +
          e.center_id + "</strong><span class='reason'>" + e.reason +
          "</span><div class='ts'>" + when + "</div></li>";
      }).join("");
    }

    function refreshAll() {
      refreshCenters().catch(console.error);
      refreshHistory().catch(console.error);
    }
    setInterval(refreshAll, 2000);
    refreshAll();
  </script>
</body>
</html>
`
