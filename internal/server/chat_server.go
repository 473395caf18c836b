package server

import (
	"fmt"
	"net/http"

	"git.appkode.ru/pub/go/failure"

	"eko_market/internal/domain/service/chat"
	"eko_market/internal/domain/service/deals"
	"eko_market/internal/domain/service/share"
	"eko_market/pkg/errcodes"
	"eko_market/pkg/httpx/reply"
	"eko_market/pkg/httpx/req"
	"eko_market/pkg/logx"
	"eko_market/pkg/rest"
)

type ChatServer struct {
	chatService *chat.Service
	collection  snapshotter
}

func NewChatServer(chatService *chat.Service, collection snapshotter) ChatServer {
	return ChatServer{
		chatService: chatService,
		collection:  collection,
	}
}

func (s ChatServer) postV1Chat(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.ChatRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	language := chat.Language(request.Language)
	if language == "" {
		language = chat.LanguageEnglish
	}

	snapshot := s.collection.Snapshot()
	collection := deals.Sort(snapshot.Deals, deals.SortByProfit)

	answer, err := s.chatService.Ask(ctx, collection, request.Question, language)
	if err != nil {
		// A failed generation still produces a transcript entry; the
		// conversation keeps going rather than erroring the request.
		logger(ctx).Error("chat generation failed", logx.Error(err))

		answer = "Error: " + err.Error()
	}

	reply.JSON(ctx, w, http.StatusOK, rest.ChatResponse{
		Answer:   answer,
		ShareURL: share.InsightLink(answer),
	})

	return nil
}

func (s ChatServer) getV1ChatGreeting(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	language := chat.LanguageEnglish
	if raw := r.URL.Query().Get("language"); raw != "" {
		language = chat.Language(raw)
		if !language.Valid() {
			return failure.NewInvalidArgumentError(
				fmt.Sprintf("unknown language %q", raw),
				failure.WithCode(errcodes.InvalidLanguage),
				failure.WithDescription("Language must be english or pidgin"),
			)
		}
	}

	greeting := chat.Greeting(language)

	reply.JSON(ctx, w, http.StatusOK, rest.ChatResponse{
		Answer:   greeting,
		ShareURL: share.InsightLink(greeting),
	})

	return nil
}
