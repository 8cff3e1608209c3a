package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hward/blogsmith/internal/types"
	"github.com/hward/blogsmith/pkg/analyzer"
	cfgPkg "github.com/hward/blogsmith/pkg/config"
	"github.com/hward/blogsmith/pkg/llm"
	"github.com/hward/blogsmith/pkg/search"
	"github.com/hward/blogsmith/pkg/seo"
	"github.com/hward/blogsmith/pkg/store"
	"github.com/hward/blogsmith/pkg/writer"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Be careful with this in production
	},
}

type Message struct {
	Type        string      `json:"type"`
	Content     string      `json:"content"`
	Title       string      `json:"title,omitempty"`
	Description string      `json:"description,omitempty"`
	Keywords    []string    `json:"keywords,omitempty"`
	TopN        int         `json:"top_n,omitempty"`
	Data        interface{} `json:"data,omitempty"`
}

type WSServer struct {
	config   *cfgPkg.Config
	searcher types.Searcher
	writer   *writer.Writer
	store    types.SnapshotStore
}

func NewWSServer(config *cfgPkg.Config) (*WSServer, error) {
	engine, err := llm.NewWithConfig(llm.EngineConfig{
		Model:       config.LLM.Model,
		MaxTokens:   config.LLM.MaxTokens,
		BaseURL:     config.LLM.BaseURL,
		Temperature: config.LLM.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize generation engine: %v", err)
	}

	w := writer.NewWithConfig(engine, writer.WriterConfig{
		WordCount: config.Writer.WordCount,
		Tone:      config.Writer.Tone,
		Audience:  config.Writer.Audience,
		OutputDir: config.Writer.OutputDir,
	})

	searcher := search.NewWithConfig(search.Config{
		APIKey:   config.Search.APIKey,
		CSEID:    config.Search.CSEID,
		Endpoint: config.Search.Endpoint,
		Timeout:  time.Duration(config.Search.Timeout) * time.Second,
	})

	var snapshots types.SnapshotStore
	if config.Database.URL != "" {
		embedder, err := llm.NewEmbedderWithConfig(llm.EmbedderConfig{
			BaseURL: config.LLM.BaseURL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize embedder: %v", err)
		}
		snapshots, err = store.NewWithConfig(store.SnapshotStoreConfig{
			ConnString: config.Database.URL,
			TableName:  config.Database.TableName,
			VectorDim:  config.Database.VectorDim,
			BatchSize:  config.Database.BatchSize,
		}, embedder)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize snapshot store: %v", err)
		}
	}

	return &WSServer{
		config:   config,
		searcher: searcher,
		writer:   w,
		store:    snapshots,
	}, nil
}

func (s *WSServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			log.Printf("Error reading message: %v", err)
			break
		}

		var msg Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("Error unmarshaling message: %v", err)
			continue
		}

		s.handleMessage(conn, msg)
	}
}

func (s *WSServer) handleMessage(conn *websocket.Conn, msg Message) {
	switch msg.Type {
	case "keywords":
		topN := msg.TopN
		if topN == 0 {
			topN = s.config.SEO.TopKeywords
		}
		keywords := seo.ExtractKeywords(msg.Content, topN, s.config.SEO.CustomStopwords...)
		s.sendData(conn, "keywords", keywords)

	case "readability":
		report := seo.CalculateReadability(msg.Content)
		s.sendData(conn, "readability", report)

	case "meta_tags":
		tags := seo.GenerateMetaTags(msg.Title, msg.Description, msg.Keywords)
		s.sendMessage(conn, "meta_tags", tags)

	case "analyze":
		s.handleAnalyze(conn, msg)

	case "similar":
		if s.store == nil {
			s.sendMessage(conn, "error", "snapshot store not configured")
			return
		}
		snaps, err := s.store.Similar(msg.Content, msg.TopN)
		if err != nil {
			s.sendMessage(conn, "error", fmt.Sprintf("Similarity search failed: %v", err))
			return
		}
		s.sendData(conn, "similar", snaps)

	case "generate":
		s.handleGenerate(conn, msg)

	default:
		s.sendMessage(conn, "error", fmt.Sprintf("unknown message type: %s", msg.Type))
	}
}

func (s *WSServer) handleAnalyze(conn *websocket.Conn, msg Message) {
	a := analyzer.NewWithConfig(s.searcher, analyzer.AnalyzerConfig{
		NumCompetitors: s.config.Analyzer.NumCompetitors,
		FetchTimeout:   time.Duration(s.config.Analyzer.FetchTimeout) * time.Second,
		RequestDelay:   time.Duration(s.config.Analyzer.RequestDelay) * time.Second,
		UserAgent:      s.config.Analyzer.UserAgent,
		Store:          s.store,
		OnProgress: func(url string) {
			s.sendMessage(conn, "progress", fmt.Sprintf("Fetching %s", url))
		},
	})

	competitors, err := a.Analyze(context.Background(), msg.Content)
	if err != nil {
		s.sendMessage(conn, "error", fmt.Sprintf("Analysis failed: %v", err))
		return
	}

	s.sendData(conn, "competitors", competitors)
}

func (s *WSServer) handleGenerate(conn *websocket.Conn, msg Message) {
	req := writer.ArticleRequest{
		Topic:    msg.Content,
		Keywords: msg.Keywords,
	}

	if s.config.UI.Streaming {
		stream, err := s.writer.GenerateArticleStream(context.Background(), req)
		if err != nil {
			s.sendMessage(conn, "error", fmt.Sprintf("Error: %v", err))
			return
		}

		for chunk := range stream {
			s.sendMessage(conn, "stream", chunk)
		}
		s.sendMessage(conn, "done", "")
	} else {
		article, err := s.writer.GenerateArticle(context.Background(), req)
		if err != nil {
			s.sendMessage(conn, "error", fmt.Sprintf("Error: %v", err))
			return
		}
		s.sendMessage(conn, "response", article.Content)
	}
}

func (s *WSServer) sendMessage(conn *websocket.Conn, msgType string, content string) {
	msg := Message{
		Type:    msgType,
		Content: content,
	}
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}

func (s *WSServer) sendData(conn *websocket.Conn, msgType string, data interface{}) {
	msg := Message{
		Type: msgType,
		Data: data,
	}
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.Parse()

	config, err := cfgPkg.LoadConfig(configPath)
	if err != nil {
		log.Fatal(err)
	}

	server, err := NewWSServer(config)
	if err != nil {
		log.Fatal(err)
	}
	if server.store != nil {
		defer server.store.Close()
	}

	// Add WebSocket endpoint
	http.HandleFunc("/ws", server.handleWebSocket)

	// Add a simple health check endpoint
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting WebSocket server on port %s", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Fatal(err)
	}
}
