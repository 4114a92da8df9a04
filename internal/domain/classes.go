package domain

// EventTx names server-pushed transactions on the event bus.
const EventTx = "tx"

// Platform class and space references used by the bot.
const (
	ClassTxCreateDoc = "core:class:TxCreateDoc"
	ClassTxUpdateDoc = "core:class:TxUpdateDoc"
	ClassTxApplyIf   = "core:class:TxApplyIf"

	ClassChatMessage    = "chunter:class:ChatMessage"
	ClassThreadMessage  = "chunter:class:ThreadMessage"
	ClassChannel        = "chunter:class:Channel"
	ClassDirectMessage  = "chunter:class:DirectMessage"
	ClassChunterMessage = "chunter:class:ChunterMessage"
	ClassActivity       = "activity:class:ActivityMessage"
	ClassIssue          = "tracker:class:Issue"
	ClassProject        = "tracker:class:Project"
	ClassPerson         = "contact:class:Person"
	ClassSpace          = "core:class:Space"

	SpaceTx      = "core:space:Tx"
	SpaceGeneral = "chunter:space:General"
)

// ExploreClasses are queried once on startup to report what the workspace
// holds.
var ExploreClasses = []string{
	ClassChatMessage,
	ClassThreadMessage,
	ClassChannel,
	ClassDirectMessage,
	ClassChunterMessage,
	ClassActivity,
	ClassIssue,
	ClassPerson,
	ClassSpace,
}
