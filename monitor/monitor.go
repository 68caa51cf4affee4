package monitor

import (
	"crypto/subtle"
	"html/template"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

var page = template.Must(template.New("monitor").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1.0" />
  <title>Course Connect Monitor</title>
  <style>
    * { margin: 0; padding: 0; box-sizing: border-box; }
    body { background: linear-gradient(135deg, #0f0f0f 0%, #1a1a2e 100%); color: #e0e0e0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; min-height: 100vh; padding: 20px; }
    .container { max-width: 1200px; margin: 0 auto; }
    h1 { font-size: 2rem; font-weight: 700; margin-bottom: 2rem; color: #a5b4fc; }
    .status-card, .logs-container { background: rgba(255, 255, 255, 0.05); border: 1px solid rgba(255, 255, 255, 0.1); border-radius: 16px; padding: 1.5rem; margin-bottom: 2rem; }
    .logs-header { display: flex; justify-content: space-between; align-items: center; margin-bottom: 1rem; }
    #logs { background: rgba(0, 0, 0, 0.3); padding: 1.5rem; border-radius: 12px; max-height: 500px; overflow-y: auto; white-space: pre-wrap; font-family: 'Monaco', 'Consolas', monospace; font-size: 0.875rem; line-height: 1.6; color: #cbd5e1; }
    button { padding: 0.75rem 1.5rem; background: #667eea; color: #ffffff; border: none; border-radius: 8px; cursor: pointer; font-weight: 600; }
    button.paused { background: #f5576c; }
  </style>
</head>
<body>
  <div class="container">
    <h1>Course Connect Monitor</h1>
    <div class="status-card"><div id="status">Status: Checking...</div></div>
    <div class="logs-container">
      <div class="logs-header">
        <div>Server Logs</div>
        <button onclick="toggleLive()" id="toggleBtn">Pause Live Logs</button>
      </div>
      <pre id="logs">Loading logs...</pre>
    </div>
  </div>
  <script>
    const token = {{.Token}};
    let liveLogs = true;
    const logsElement = document.getElementById('logs');
    const statusElement = document.getElementById('status');
    const toggleBtn = document.getElementById('toggleBtn');

    function fetchStatus() {
      fetch('/api/v1/health')
        .then(res => res.json())
        .then(data => {
          statusElement.textContent = 'Status: ' + (data.success ? 'Online' : 'Offline') +
            ' · open review drafts: ' + data.open_drafts + ' · courses: ' + data.course_source;
        })
        .catch(() => { statusElement.textContent = 'Status: Offline'; });
    }

    function fetchLogs() {
      if (!liveLogs) return;
      fetch('/logs?token=' + encodeURIComponent(token))
        .then(res => res.text())
        .then(data => {
          logsElement.textContent = data;
          logsElement.scrollTop = logsElement.scrollHeight;
        });
    }

    function toggleLive() {
      liveLogs = !liveLogs;
      toggleBtn.textContent = liveLogs ? 'Pause Live Logs' : 'Resume Live Logs';
      toggleBtn.classList.toggle('paused', !liveLogs);
    }

    fetchStatus();
    fetchLogs();
    setInterval(fetchStatus, 5000);
    setInterval(fetchLogs, 5000);
  </script>
</body>
</html>`))

// RegisterMonitorPage mounts /monitor and /logs behind token. Nothing is
// mounted when token is empty.
func RegisterMonitorPage(router *gin.Engine, token, logPath string) bool {
	if token == "" {
		return false
	}

	authorized := func(c *gin.Context) bool {
		if subtle.ConstantTimeCompare([]byte(c.Query("token")), []byte(token)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return false
		}
		return true
	}

	router.GET("/monitor", func(c *gin.Context) {
		if !authorized(c) {
			return
		}
		c.Header("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; script-src 'self' 'unsafe-inline'")
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.Status(http.StatusOK)
		if err := page.Execute(c.Writer, gin.H{"Token": token}); err != nil {
			c.Error(err)
		}
	})

	router.GET("/logs", func(c *gin.Context) {
		if !authorized(c) {
			return
		}
		logData, err := os.ReadFile(logPath)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to read log"})
			return
		}
		c.Data(http.StatusOK, "text/plain; charset=utf-8", logData)
	})

	return true
}
