package seed

import (
	"context"
	"fmt"

	"agentstudio/internal/domain"
	"agentstudio/internal/store"
)

// SeededAgents holds the default agents by short handle for linking.
type SeededAgents struct {
	UserProxy         *domain.Agent
	DefaultAssistant  *domain.Agent
	TravelGroupChat   *domain.Agent
	PlannerAssistant  *domain.Agent
	LocalAssistant    *domain.Agent
	LanguageAssistant *domain.Agent
}

// defaultAssistantSystemMessage is the stock assistant prompt used by the
// default workflow.
const defaultAssistantSystemMessage = `You are a helpful AI assistant.
Solve tasks using your coding and language skills.
In the following cases, suggest python code (in a python coding block) or shell script (in a sh coding block) for the user to execute.
    1. When you need to collect info, use the code to output the info you need, for example, browse or search the web, download/read a file, print the content of a webpage or a file, get the current date/time, check the operating system. After sufficient info is printed and the task is ready to be solved based on your language skill, you can solve the task by yourself.
    2. When you need to perform some task with code, use the code to perform the task and output the result. Finish the task smartly.
Solve the task step by step if you need to. If a plan is not provided, explain your plan first. Be clear which step uses code, and which step uses your language skill.
When using code, you must indicate the script type in the code block. The user cannot provide any other feedback or perform any other action beyond executing the code you suggest. The user can't modify your code. So do not suggest incomplete code which requires users to modify. Don't use a code block if it's not intended to be executed by the user.
If you want the user to save the code in a file before executing it, put # filename: <filename> inside the code block as the first line. Don't include multiple code blocks in one response. Do not ask users to copy and paste the result. Instead, use 'print' function for the output when relevant. Check the execution result returned by the user.
If the result indicates there is an error, fix the error and output the code again. Suggest the full code instead of partial code or code changes. If the error can't be fixed or if the task is not solved even after the code is executed successfully, analyze the problem, revisit your assumption, collect additional info you need, and think of a different approach to try.
When you find an answer, verify the answer carefully. Include verifiable evidence in your response if possible.
Reply "TERMINATE" in the end when everything is done.`

// Agents inserts the default agents.
func Agents(ctx context.Context, s *store.Store) (*SeededAgents, error) {
	allowRepeat := true

	defs := []*domain.Agent{
		{
			UserID: GuestUser,
			Type:   domain.AgentTypeUserProxy,
			Config: domain.AgentConfig{
				Name:                    "user_proxy",
				Description:             "User Proxy Agent Configuration",
				HumanInputMode:          "NEVER",
				MaxConsecutiveAutoReply: 25,
				SystemMessage:           "You are a helpful assistant",
				CodeExecutionConfig:     domain.CodeExecutionLocal,
				DefaultAutoReply:        "TERMINATE",
				LLMConfig:               &domain.LLMConfig{Disabled: true},
			},
		},
		{
			UserID: GuestUser,
			Type:   domain.AgentTypeAssistant,
			Config: domain.AgentConfig{
				Name:                    "default_assistant",
				Description:             "Assistant Agent",
				HumanInputMode:          "NEVER",
				MaxConsecutiveAutoReply: 25,
				SystemMessage:           defaultAssistantSystemMessage,
				CodeExecutionConfig:     domain.CodeExecutionNone,
				LLMConfig:               &domain.LLMConfig{},
			},
		},
		{
			UserID: GuestUser,
			Type:   domain.AgentTypeGroupChat,
			Config: domain.AgentConfig{
				Name:                    "travel_groupchat",
				AdminName:               "groupchat",
				Description:             "Group Chat Agent Configuration",
				HumanInputMode:          "NEVER",
				MaxConsecutiveAutoReply: 25,
				SystemMessage:           "You are a group chat manager",
				CodeExecutionConfig:     domain.CodeExecutionNone,
				DefaultAutoReply:        "TERMINATE",
				LLMConfig:               &domain.LLMConfig{},
				MaxRound:                100,
				SpeakerSelectionMethod:  "auto",
				AllowRepeatSpeaker:      &allowRepeat,
			},
		},
		{
			UserID: GuestUser,
			Type:   domain.AgentTypeAssistant,
			Config: domain.AgentConfig{
				Name:                    "planner_assistant",
				Description:             "Assistant Agent",
				HumanInputMode:          "NEVER",
				MaxConsecutiveAutoReply: 25,
				SystemMessage:           "You are a helpful assistant that can suggest a travel plan for a user and utilize any context information provided. You are the primary cordinator who will receive suggestions or advice from other agents (local_assistant, language_assistant). You must ensure that the finally plan integrates the suggestions from other agents or team members. YOUR FINAL RESPONSE MUST BE THE COMPLETE PLAN. When the plan is complete and all perspectives are integrated, you can respond with TERMINATE.",
				CodeExecutionConfig:     domain.CodeExecutionNone,
				LLMConfig:               &domain.LLMConfig{},
			},
		},
		{
			UserID: GuestUser,
			Type:   domain.AgentTypeAssistant,
			Config: domain.AgentConfig{
				Name:                    "local_assistant",
				Description:             "Local Assistant Agent",
				HumanInputMode:          "NEVER",
				MaxConsecutiveAutoReply: 25,
				SystemMessage:           "You are a local assistant that can suggest local activities or places to visit for a user and can utilize any context information provided. You can suggest local activities, places to visit, restaurants to eat at, etc. You can also provide information about the weather, local events, etc. You can provide information about the local area, but you cannot suggest a complete travel plan. You can only provide information about the local area.",
				CodeExecutionConfig:     domain.CodeExecutionNone,
				LLMConfig:               &domain.LLMConfig{},
			},
		},
		{
			UserID: GuestUser,
			Type:   domain.AgentTypeAssistant,
			Config: domain.AgentConfig{
				Name:                    "language_assistant",
				Description:             "Language Assistant Agent",
				HumanInputMode:          "NEVER",
				MaxConsecutiveAutoReply: 25,
				SystemMessage:           "You are a helpful assistant that can review travel plans, providing feedback on important/critical tips about how best to address language or communication challenges for the given destination. If the plan already includes language tips, you can mention that the plan is satisfactory, with rationale.",
				CodeExecutionConfig:     domain.CodeExecutionNone,
				LLMConfig:               &domain.LLMConfig{},
			},
		},
	}

	seeded := &SeededAgents{}
	for _, def := range defs {
		created, err := s.Agents.Create(ctx, def)
		if err != nil {
			return nil, fmt.Errorf("insert agent %s: %w", def.Config.Name, err)
		}
		switch created.Config.Name {
		case "user_proxy":
			seeded.UserProxy = created
		case "default_assistant":
			seeded.DefaultAssistant = created
		case "travel_groupchat":
			seeded.TravelGroupChat = created
		case "planner_assistant":
			seeded.PlannerAssistant = created
		case "local_assistant":
			seeded.LocalAssistant = created
		case "language_assistant":
			seeded.LanguageAssistant = created
		}
	}
	return seeded, nil
}
