// Package text exposes a small public API for running a chat through a
// language model which may call tools, and getting the full conversation
// back once the model has answered.
//
//	ctx := context.Background()
//	q := text.NewFullResponseQuerier(agent.WithModel("llama3.2"))
//	if err := q.Setup(ctx); err != nil {
//	    // handle error
//	}
//	chat := models.Chat{ /* populate chat with messages */ }
//	reply, err := q.Query(ctx, chat)
//
// The reply holds the given messages followed by every tool request, tool
// result and the final answer.
package text
