package main

import (
	"flag"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/miretskiy/cpusched/simulator"
	"github.com/miretskiy/cpusched/terminal"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var indexTemplate *template.Template

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for development
		return true
	},
}

// Client message types
type ClientMessage struct {
	Type string `json:"type"` // "input"
	Line string `json:"line,omitempty"`
}

// Server message types
type ServerMessage struct {
	Type   string            `json:"type"` // "output" or "result"
	Lines  []string          `json:"lines,omitempty"`
	Clear  bool              `json:"clear,omitempty"`
	State  string            `json:"state,omitempty"`
	RunID  string            `json:"runId,omitempty"`
	Result *simulator.Result `json:"result,omitempty"`
	Stats  *simulator.Stats  `json:"stats,omitempty"`
}

// safeConn wraps a WebSocket connection with a mutex to prevent concurrent writes
type safeConn struct {
	*websocket.Conn
	writeMu sync.Mutex
}

func (sc *safeConn) WriteJSON(v interface{}) error {
	sc.writeMu.Lock()
	defer sc.writeMu.Unlock()
	return sc.Conn.WriteJSON(v)
}

// keepAliveLoop pings the client until stopCh is closed so idle terminals
// survive proxies that drop silent connections
func keepAliveLoop(conn *safeConn, stopCh <-chan struct{}) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			deadline := time.Now().Add(5 * time.Second)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				log.Printf("Error sending ping: %v", err)
				return
			}
		}
	}
}

func handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Error upgrading connection: %v", err)
		return
	}
	defer conn.Close()

	// Wrap connection with mutex for safe concurrent writes
	safeConn := &safeConn{Conn: conn}

	log.Println("Client connected")
	promMetrics.activeSessions.Inc()
	defer promMetrics.activeSessions.Dec()

	session := terminal.NewSession()
	session.OnResult = func(result simulator.Result) {
		runID := uuid.New().String()
		stats := simulator.ComputeStats(result)
		recordPrometheusRun(result, stats)
		log.Printf("Run %s: %s over %d processes", runID, result.Algorithm, len(result.Processes))

		msg := ServerMessage{
			Type:   "result",
			RunID:  runID,
			Result: &result,
			Stats:  &stats,
		}
		if err := safeConn.WriteJSON(msg); err != nil {
			log.Printf("Error sending result: %v", err)
		}
	}

	// Send banner
	if err := safeConn.WriteJSON(ServerMessage{
		Type:  "output",
		Lines: session.Banner(),
		State: session.State().String(),
	}); err != nil {
		log.Printf("Error sending banner: %v", err)
		return
	}

	stopCh := make(chan struct{})
	defer close(stopCh)
	go keepAliveLoop(safeConn, stopCh)

	// Handle messages from client
	for {
		var msg ClientMessage
		err := conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Error reading message: %v", err)
			}
			break
		}

		switch msg.Type {
		case "input":
			resp := session.Handle(msg.Line)
			out := ServerMessage{
				Type:  "output",
				Lines: resp.Lines,
				Clear: resp.Clear,
				State: session.State().String(),
			}
			if err := safeConn.WriteJSON(out); err != nil {
				log.Printf("Error sending output: %v", err)
				return
			}
		default:
			log.Printf("Ignoring unknown message type: %s", msg.Type)
		}
	}

	log.Println("Client disconnected")
}

func serveHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, nil); err != nil {
		log.Printf("Error executing template: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func quitHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Shutdown requested via /quitquitquit")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Server shutting down...")

	go func() {
		time.Sleep(100 * time.Millisecond)
		log.Println("Server stopped")
		os.Exit(0)
	}()
}

func main() {
	addr := flag.String("addr", ":8080", "Listen address")
	templateDir := flag.String("templates", "templates", "Directory containing index.html")
	flag.Parse()

	// Load templates
	templatePath := filepath.Join(*templateDir, "index.html")
	var err error
	indexTemplate, err = template.ParseFiles(templatePath)
	if err != nil {
		log.Fatalf("Error loading template: %v", err)
	}
	log.Printf("Loaded template: %s", templatePath)

	initPrometheusMetrics()

	http.HandleFunc("/", serveHome)
	http.HandleFunc("/ws", handleWebSocket)
	http.Handle("/metrics", promhttp.Handler())
	http.HandleFunc("/quitquitquit", quitHandler)

	log.Printf("Server starting on http://localhost%s", *addr)
	log.Printf("WebSocket endpoint: ws://localhost%s/ws", *addr)
	log.Printf("Metrics endpoint: http://localhost%s/metrics", *addr)
	log.Fatal(http.ListenAndServe(*addr, nil))
}
