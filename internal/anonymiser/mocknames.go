package anonymiser

// mockNamePool is the ordered set of placeholder names handed out during a
// masking pass. Assignment wraps around modulo the pool size, so any number
// of unique real names maps onto a bounded, deterministic set of stand-ins.
var mockNamePool = []string{
	"Alex Tan",
	"Jamie Lim",
	"Sam Lee",
	"Jordan Ng",
	"Casey Wong",
	"Taylor Goh",
	"Morgan Chua",
	"Riley Teo",
	"Quinn Ong",
	"Avery Koh",
	"Dana Chen",
	"Robin Yeo",
	"Skyler Ho",
	"Jesse Low",
	"Harper Sim",
	"Rowan Chia",
	"Emerson Toh",
	"Finley Seah",
	"Reese Ang",
	"Blake Foo",
}
