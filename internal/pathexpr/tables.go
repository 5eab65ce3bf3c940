package pathexpr

// BodyExpressions is the ranked list of candidate body-locating path
// expressions (spec §4.4), most specific first. The Candidate Selector
// tries each in order and stops at the first one that survives cleaning
// and pruning with more than one surviving child.
var BodyExpressions = []Expression{
	{ID: "main-article", Path: `//*[(self::article or self::main)][.//p]`},
	{ID: "role-main", Path: `//*[@role='main'][.//p]`},
	{ID: "itemprop-body", Path: `//*[@itemprop='articleBody' or @itemprop='text']`},
	{ID: "entry-content", Path: `//*[contains(@class,'entry-content') or contains(@class,'post-content') or contains(@class,'article-content') or contains(@id,'entry-content') or contains(@id,'post-content')]`},
	{ID: "article-body-class", Path: `//*[contains(@class,'articleBody') or contains(@class,'article-body') or contains(@id,'article-body')]`},
	{ID: "content-div", Path: `//div[contains(@class,'content') or contains(@id,'content')][.//p]`},
	{ID: "section-fallback", Path: `//section[.//p]`},
	{ID: "body-fallback", Path: `//body`},
}

// CommentsExpressions is the ranked list of comments-region path
// expressions (spec §4.2).
var CommentsExpressions = []Expression{
	{ID: "comments-id", Path: `//*[@id='comments' or @id='comment-list' or @id='disqus_thread']`},
	{ID: "comments-class", Path: `//*[contains(@class,'comments') or contains(@class,'comment-list') or contains(@class,'comment-body')]`},
	{ID: "comments-section", Path: `//section[contains(@class,'comments')]`},
	{ID: "comments-aria", Path: `//*[@aria-label='Comments' or @aria-labelledby='comments']`},
}

// DiscardExpressions enumerates subtrees the Cleaner removes before
// candidate selection and during Wild-Text Recovery (spec §4.2): nav
// chrome, ads, social widgets, comment forms, share bars.
var DiscardExpressions = []Expression{
	{ID: "nav", Path: `//nav`},
	{ID: "aside", Path: `//aside`},
	{ID: "footer", Path: `//footer`},
	{ID: "header-chrome", Path: `//header[not(.//article)]`},
	{ID: "form", Path: `//form`},
	{ID: "role-nav", Path: `//*[@role='navigation' or @role='banner' or @role='complementary']`},
	{ID: "ad-class", Path: `//*[contains(@class,'advert') or contains(@class,'ad-') or contains(@id,'ad-') or contains(@class,'sponsor')]`},
	{ID: "social-class", Path: `//*[contains(@class,'share') or contains(@class,'social') or contains(@class,'sharing')]`},
	{ID: "related-class", Path: `//*[contains(@class,'related') or contains(@class,'recommend')]`},
	{ID: "sidebar-class", Path: `//*[contains(@class,'sidebar') or contains(@id,'sidebar')]`},
	{ID: "cookie-banner", Path: `//*[contains(@class,'cookie') or contains(@id,'cookie')]`},
	{ID: "pagination", Path: `//*[contains(@class,'pagination') or contains(@class,'pager')]`},
}

// CommentsDiscardExpressions prunes non-comment chrome from a matched
// comments subtree: reply forms, "load more" controls, the comment-count
// header, voting widgets.
var CommentsDiscardExpressions = []Expression{
	{ID: "comment-form", Path: `//form`},
	{ID: "comment-reply", Path: `//*[contains(@class,'reply') or contains(@class,'comment-form')]`},
	{ID: "comment-meta", Path: `//*[contains(@class,'comment-count') or contains(@class,'comment-header')]`},
	{ID: "comment-vote", Path: `//*[contains(@class,'vote') or contains(@class,'upvote') or contains(@class,'downvote')]`},
}

// ImageDiscardExpressions removes image carriers (figure/picture/img) when
// include_images=false, applied by both the Cleaner and Wild-Text Recovery.
var ImageDiscardExpressions = []Expression{
	{ID: "img", Path: `//img`},
	{ID: "picture", Path: `//picture`},
	{ID: "figure", Path: `//figure`},
}
